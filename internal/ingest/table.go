package ingest

import (
	"fmt"
	"strconv"
)

// Table is an ordered, loosely typed tabular dataset. Cells start out as
// strings straight from the delimited source; ApplySpec rewrites spec-listed
// columns to float64 / int64 in place, and Join fills unmatched cells with
// nil. Column order is preserved end to end.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable creates an empty table with the given column names.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AppendRow adds one row, padded or truncated to the table width.
func (t *Table) AppendRow(cells []any) {
	row := make([]any, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// AppendStringRow adds one row of raw text cells.
func (t *Table) AppendStringRow(cells []string) {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	t.AppendRow(row)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Clone returns a deep copy. Rows are copied cell-slice by cell-slice so the
// copy can be normalized or joined without touching the original.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable(t.Columns)
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		copy(cells, row)
		out.Rows[i] = cells
	}
	return out
}

// CellFloat extracts a numeric cell value. Strings and nil are not numeric;
// normalization decides which columns become numbers, not the reader.
func CellFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// CellString renders a cell in its canonical text form. Numeric cells use the
// shortest exact decimal representation; nil renders empty.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprintf("%v", c)
	}
}
