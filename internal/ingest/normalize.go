package ingest

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the numeric treatment a report column receives during
// normalization.
type Kind int

const (
	KindText Kind = iota
	KindCurrency
	KindPercent
	KindCount
	KindNumeric
)

// ColumnSpec maps normalized column names to their numeric kind.
type ColumnSpec map[string]Kind

// NormalizeColumnNames trims every column name and converts full-width
// parentheses to ASCII. The report sources mix both conventions, at times
// within a single export, and every later lookup assumes the normalized
// form.
func NormalizeColumnNames(t *Table) {
	for i, c := range t.Columns {
		t.Columns[i] = NormalizeName(c)
	}
}

// NormalizeName canonicalizes a single column name.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "（", "(")
	name = strings.ReplaceAll(name, "）", ")")
	return name
}

// ApplySpec converts each spec-listed column present in the table to its
// numeric kind, cell by cell, in place. Columns missing from the table are
// skipped; columns the spec does not mention stay text. A cell that refuses
// to parse becomes zero rather than failing the table.
//
// Percentages keep their whole-number magnitude: "5.0%" normalizes to 5.0,
// never 0.05. Do not mix these columns with 0-1 scaled fractions from other
// sources.
func ApplySpec(t *Table, spec ColumnSpec) {
	for i, name := range t.Columns {
		kind, ok := spec[name]
		if !ok || kind == KindText {
			continue
		}
		for _, row := range t.Rows {
			row[i] = convertCell(row[i], kind)
		}
	}
}

var (
	currencyStripper  = strings.NewReplacer("円", "", "¥", "", ",", "")
	percentStripper   = strings.NewReplacer("%", "", ",", "")
	thousandsStripper = strings.NewReplacer(",", "")
)

func convertCell(v any, kind Kind) any {
	// Cells that are already numeric pass straight through; counts still
	// collapse to whole numbers.
	if f, ok := CellFloat(v); ok {
		if kind == KindCount {
			return int64(f)
		}
		return f
	}

	s, _ := v.(string) // nil and anything else coerces through ""

	switch kind {
	case KindCurrency:
		return parseLenientFloat(currencyStripper.Replace(s))
	case KindPercent:
		return parseLenientFloat(percentStripper.Replace(s))
	case KindCount:
		return int64(parseLenientFloat(thousandsStripper.Replace(s)))
	case KindNumeric:
		return parseLenientFloat(s)
	}
	return v
}

// parseLenientFloat is the coercion primitive. Malformed, blank, and
// non-finite values all land on zero.
func parseLenientFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
