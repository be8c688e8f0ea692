// Package export serializes result tables for download.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"golang.org/x/text/encoding/japanese"

	"github.com/ignite/rpp-analyzer/internal/ingest"
)

// Filename is the download name served for filtered exports.
const Filename = "rpp_analysis_filtered.csv"

// CSV renders a table as Shift_JIS CSV for the spreadsheet tools common in
// the merchant's locale. Runes with no Shift_JIS mapping are dropped from
// the output rather than failing the export; that includes the U+FFFD
// markers a lossy decode may have left behind.
func CSV(t *ingest.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = toShiftJIS(c)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			rec[i] = toShiftJIS(ingest.CellString(cell))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toShiftJIS encodes a field, silently dropping unencodable runes. Encoded
// fields are safe to pass through the csv writer: no Shift_JIS trail byte
// collides with the ASCII comma, quote, or newline.
func toShiftJIS(s string) string {
	enc := japanese.ShiftJIS.NewEncoder()
	if out, err := enc.String(s); err == nil {
		return out
	}
	var b strings.Builder
	for _, r := range s {
		if out, err := japanese.ShiftJIS.NewEncoder().String(string(r)); err == nil {
			b.WriteString(out)
		}
	}
	return b.String()
}
