// Package analysis derives the decision-support views from a joined report
// table: threshold filtering, the scatter projection, and the correlation
// report.
package analysis

import (
	"fmt"
	"strings"

	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/rakuten"
)

// Thresholds are the conjunctive lower bounds for keyword discovery. A row
// qualifies only when it clears all three at once.
type Thresholds struct {
	MinCPC    float64 `json:"min_cpc"`
	MinCVR    float64 `json:"min_cvr"`
	MinClicks float64 `json:"min_clicks"`
}

// MissingColumnsError reports a joined table that cannot be filtered
// because required metric columns are absent.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Missing, ", "))
}

// Filter returns the rows clearing every threshold. Rows whose metric cells
// are not numeric, such as unmatched join rows, never qualify. The result
// shares row storage with the input; treat both as read-only.
func Filter(t *ingest.Table, th Thresholds) (*ingest.Table, error) {
	var missing []string
	for _, c := range rakuten.ScatterColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	cpc := t.ColumnIndex(rakuten.ColCPCActual)
	cvr := t.ColumnIndex(rakuten.ColConversion)
	clicks := t.ColumnIndex(rakuten.ColClicks)

	out := ingest.NewTable(t.Columns)
	for _, row := range t.Rows {
		c, ok1 := ingest.CellFloat(row[cpc])
		v, ok2 := ingest.CellFloat(row[cvr])
		k, ok3 := ingest.CellFloat(row[clicks])
		if ok1 && ok2 && ok3 && c >= th.MinCPC && v >= th.MinCVR && k >= th.MinClicks {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
