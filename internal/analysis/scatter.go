package analysis

import (
	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/rakuten"
)

// Point is one keyword on the discovery map.
type Point struct {
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Size  float64        `json:"size"`
	Color float64        `json:"color"`
	Hover map[string]any `json:"hover,omitempty"`
}

// Scatter is the plotted form of a filtered table: CPC on x, conversion
// rate on y, click volume as point size, ROAS as point color.
type Scatter struct {
	XColumn     string  `json:"x_column"`
	YColumn     string  `json:"y_column"`
	SizeColumn  string  `json:"size_column"`
	ColorColumn string  `json:"color_column"`
	Points      []Point `json:"points"`
}

// BuildScatter maps filtered rows onto plot points. Filter has already
// required the four axis columns, so the projection itself cannot fail;
// hover context is attached for whichever annotation columns the join
// produced.
func BuildScatter(t *ingest.Table) *Scatter {
	xi := t.ColumnIndex(rakuten.ColCPCActual)
	yi := t.ColumnIndex(rakuten.ColConversion)
	si := t.ColumnIndex(rakuten.ColClicks)
	ci := t.ColumnIndex(rakuten.ColROAS720)

	hoverIdx := make(map[string]int)
	for _, c := range rakuten.HoverColumns {
		if i := t.ColumnIndex(c); i >= 0 {
			hoverIdx[c] = i
		}
	}

	s := &Scatter{
		XColumn:     rakuten.ColCPCActual,
		YColumn:     rakuten.ColConversion,
		SizeColumn:  rakuten.ColClicks,
		ColorColumn: rakuten.ColROAS720,
		Points:      make([]Point, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		x, _ := ingest.CellFloat(row[xi])
		y, _ := ingest.CellFloat(row[yi])
		size, _ := ingest.CellFloat(row[si])
		color, _ := ingest.CellFloat(row[ci])

		p := Point{X: x, Y: y, Size: size, Color: color}
		if len(hoverIdx) > 0 {
			p.Hover = make(map[string]any, len(hoverIdx))
			for c, i := range hoverIdx {
				p.Hover[c] = row[i]
			}
		}
		s.Points = append(s.Points, p)
	}
	return s
}
