package export

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"github.com/ignite/rpp-analyzer/internal/ingest"
)

func decodeShiftJIS(t *testing.T, b []byte) string {
	t.Helper()
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	return string(s)
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := ingest.NewTable([]string{"商品管理番号", "キーワード", "実績額(合計)"})
	tbl.AppendRow([]any{"A1", "花瓶 北欧", 1234.0})
	tbl.AppendRow([]any{"B2", "皿, セット", int64(980)})

	out, err := CSV(tbl)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	r := csv.NewReader(strings.NewReader(decodeShiftJIS(t, out)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-parse export: %v", err)
	}

	want := [][]string{
		{"商品管理番号", "キーワード", "実績額(合計)"},
		{"A1", "花瓶 北欧", "1234"},
		{"B2", "皿, セット", "980"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("export = %v, want %v", records, want)
	}
}

func TestCSVDropsUnencodableRunes(t *testing.T) {
	tbl := ingest.NewTable([]string{"キーワード"})
	tbl.AppendRow([]any{"花瓶\U0001F600北欧"}) // emoji has no Shift_JIS form
	tbl.AppendRow([]any{"椀�木製"})       // leftover replacement marker

	out, err := CSV(tbl)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	text := decodeShiftJIS(t, out)
	if strings.Contains(text, "�") {
		t.Errorf("export kept an unencodable marker: %q", text)
	}
	if !strings.Contains(text, "花瓶北欧") || !strings.Contains(text, "椀木製") {
		t.Errorf("export = %q, want the encodable runes kept in place", text)
	}
}

func TestCSVNilCellsRenderEmpty(t *testing.T) {
	tbl := ingest.NewTable([]string{"a", "b"})
	tbl.AppendRow([]any{"x", nil})

	out, err := CSV(tbl)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	if got := decodeShiftJIS(t, out); got != "a,b\nx,\n" {
		t.Errorf("export = %q, want %q", got, "a,b\nx,\n")
	}
}
