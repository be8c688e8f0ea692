package analysis

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/rakuten"
)

// ErrInsufficientColumns means fewer than two correlation candidates exist
// in the joined table, so there is nothing to correlate.
var ErrInsufficientColumns = errors.New("fewer than two correlation columns present")

// significanceFloor is the minimum |r| for a pair to be reported.
const significanceFloor = 0.3

// maxExamples caps how many representative rows each pair carries.
const maxExamples = 3

// Example is a row that typifies a correlated pair. For positive pairs both
// metrics run high; for negative pairs the first runs high while the second
// runs low.
type Example struct {
	Keyword string  `json:"keyword"`
	Product string  `json:"product"`
	Value1  float64 `json:"value1"`
	Value2  float64 `json:"value2"`
}

// Pair is one significant correlation between two metric columns.
type Pair struct {
	Col1      string    `json:"col1"`
	Col2      string    `json:"col2"`
	R         float64   `json:"r"`
	Strength  string    `json:"strength"`
	Direction string    `json:"direction"`
	Examples  []Example `json:"examples,omitempty"`
}

// Report is the correlation analysis over a joined table. Matrix cells are
// nil where a coefficient is undefined, fewer than two complete pairs or a
// constant column; pointers keep those holes JSON-encodable.
type Report struct {
	Columns []string     `json:"columns"`
	Matrix  [][]*float64 `json:"matrix"`
	Pairs   []Pair       `json:"pairs"`
}

// Correlate computes pairwise Pearson coefficients across the candidate
// metric columns present in the table, then ranks the significant pairs by
// coefficient magnitude. Each pairwise coefficient uses only the rows where
// both cells are numeric.
func Correlate(t *ingest.Table) (*Report, error) {
	var cols []string
	var idx []int
	for _, c := range rakuten.CorrelationCandidates {
		if i := t.ColumnIndex(c); i >= 0 {
			cols = append(cols, c)
			idx = append(idx, i)
		}
	}
	if len(cols) < 2 {
		return nil, ErrInsufficientColumns
	}

	n := len(cols)
	matrix := make([][]*float64, n)
	for i := range matrix {
		matrix[i] = make([]*float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r, ok := pairwiseCorrelation(t, idx[i], idx[j])
			if !ok {
				continue
			}
			v := r
			matrix[i][j] = &v
			matrix[j][i] = &v
		}
	}

	var pairs []Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cell := matrix[i][j]
			if cell == nil || math.Abs(*cell) < significanceFloor {
				continue
			}
			pairs = append(pairs, Pair{
				Col1:      cols[i],
				Col2:      cols[j],
				R:         *cell,
				Strength:  strengthBand(*cell),
				Direction: direction(*cell),
				Examples:  pickExamples(t, idx[i], idx[j], *cell > 0),
			})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].R) > math.Abs(pairs[b].R)
	})

	return &Report{Columns: cols, Matrix: matrix, Pairs: pairs}, nil
}

// pairwiseCorrelation computes Pearson's r over the rows where both cells
// are numeric. It reports false when fewer than two such rows exist or the
// coefficient degenerates, as it does for constant columns.
func pairwiseCorrelation(t *ingest.Table, ci, cj int) (float64, bool) {
	var xs, ys []float64
	for _, row := range t.Rows {
		x, ok1 := ingest.CellFloat(row[ci])
		y, ok2 := ingest.CellFloat(row[cj])
		if ok1 && ok2 {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

func strengthBand(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return "strong"
	case abs >= 0.5:
		return "moderate"
	default:
		return "weak"
	}
}

func direction(r float64) string {
	if r < 0 {
		return "negative"
	}
	return "positive"
}

// pickExamples selects up to maxExamples rows that most typify the pair.
// Rows are scored on max-scaled fractions: the sum of both for positive
// pairs, the difference for negative ones. Without keyword and product name
// columns there is nothing presentable, so no examples are attached.
func pickExamples(t *ingest.Table, ci, cj int, positive bool) []Example {
	ki := t.ColumnIndex(rakuten.ColKeyword)
	pi := t.ColumnIndex(rakuten.ColProductName)
	if ki < 0 || pi < 0 {
		return nil
	}

	type scored struct {
		ex    Example
		score float64
	}
	var rows []scored
	var max1, max2 float64
	seen := false
	for _, row := range t.Rows {
		v1, ok1 := ingest.CellFloat(row[ci])
		v2, ok2 := ingest.CellFloat(row[cj])
		if !ok1 || !ok2 || row[ki] == nil || row[pi] == nil {
			continue
		}
		if !seen || v1 > max1 {
			max1 = v1
		}
		if !seen || v2 > max2 {
			max2 = v2
		}
		seen = true
		rows = append(rows, scored{ex: Example{
			Keyword: ingest.CellString(row[ki]),
			Product: ingest.CellString(row[pi]),
			Value1:  v1,
			Value2:  v2,
		}})
	}
	if len(rows) == 0 {
		return nil
	}

	frac := func(v, max float64) float64 {
		if max == 0 {
			return 0
		}
		return v / max
	}
	for i := range rows {
		f1 := frac(rows[i].ex.Value1, max1)
		f2 := frac(rows[i].ex.Value2, max2)
		if positive {
			rows[i].score = f1 + f2
		} else {
			rows[i].score = f1 - f2
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].score > rows[b].score })

	limit := maxExamples
	if len(rows) < limit {
		limit = len(rows)
	}
	out := make([]Example, 0, limit)
	for _, r := range rows[:limit] {
		out = append(out, r.ex)
	}
	return out
}
