package ingest

import (
	"fmt"
	"strings"
)

// MissingKeyError reports a join aborted because one side has no key
// column. Columns carries that side's actual header so schema mismatches
// can be diagnosed without re-reading the upload.
type MissingKeyError struct {
	Side    string
	Key     string
	Columns []string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s table has no %q column (columns: %s)",
		e.Side, e.Key, strings.Join(e.Columns, ", "))
}

// Join left-joins right onto left by the key column. Key cells on both
// sides are coerced to canonical text in place first, so numeric-looking
// identifiers compare as strings and leading zeros survive. Every left row
// appears exactly once in the result; when the right side repeats a key,
// the first occurrence wins. Left rows without a match carry nil cells in
// the right-side columns. Column names that collide across the two sides
// are disambiguated with the given suffixes on both; the key itself never
// gets one. The only failure mode is the key column missing from either
// input.
func Join(left, right *Table, key, leftSuffix, rightSuffix string) (*Table, error) {
	li := left.ColumnIndex(key)
	if li < 0 {
		return nil, &MissingKeyError{Side: "left", Key: key, Columns: left.Columns}
	}
	ri := right.ColumnIndex(key)
	if ri < 0 {
		return nil, &MissingKeyError{Side: "right", Key: key, Columns: right.Columns}
	}

	for _, row := range left.Rows {
		row[li] = CellString(row[li])
	}
	for _, row := range right.Rows {
		row[ri] = CellString(row[ri])
	}

	cols := make([]string, 0, len(left.Columns)+len(right.Columns)-1)
	for _, c := range left.Columns {
		if c != key && right.HasColumn(c) {
			c += leftSuffix
		}
		cols = append(cols, c)
	}
	rightIdx := make([]int, 0, len(right.Columns)-1)
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		if left.ColumnIndex(c) >= 0 {
			c += rightSuffix
		}
		cols = append(cols, c)
		rightIdx = append(rightIdx, i)
	}

	byKey := make(map[string][]any, len(right.Rows))
	for _, row := range right.Rows {
		k, _ := row[ri].(string)
		if _, seen := byKey[k]; !seen {
			byKey[k] = row
		}
	}

	out := NewTable(cols)
	for _, lrow := range left.Rows {
		cells := make([]any, 0, len(cols))
		cells = append(cells, lrow...)
		k, _ := lrow[li].(string)
		if rrow, ok := byKey[k]; ok {
			for _, i := range rightIdx {
				cells = append(cells, rrow[i])
			}
		} else {
			for range rightIdx {
				cells = append(cells, nil)
			}
		}
		out.AppendRow(cells)
	}
	return out, nil
}
