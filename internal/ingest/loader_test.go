package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadShiftJISReportWithBanner(t *testing.T) {
	text := "RPPパフォーマンスレポート\n" +
		"対象期間: 2025-01-01 - 2025-01-31\n" +
		"\n" +
		"商品管理番号,キーワード,実績額(合計)\n" +
		"shop-a-001,花瓶 北欧 おしゃれ,1234円\n" +
		"shop-a-002,皿 セット 陶器,980円\n" +
		"shop-a-003,椀 木製 漆塗り,2456円\n" +
		"shop-a-004,箸置き かわいい,312円\n"
	raw := encodeShiftJIS(t, text)

	res, err := NewLoader("商品管理番号", 0, nil).Load(raw)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Encoding != "CP932" {
		t.Errorf("Encoding = %q, want CP932", res.Encoding)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	wantCols := []string{"商品管理番号", "キーワード", "実績額(合計)"}
	if !reflect.DeepEqual(res.Table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", res.Table.Columns, wantCols)
	}
	if len(res.Table.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(res.Table.Rows))
	}
	if res.Table.Rows[0][0] != "shop-a-001" || res.Table.Rows[0][2] != "1234円" {
		t.Errorf("first row = %v", res.Table.Rows[0])
	}
}

func TestLoadFallsBackWhenSentinelAbsent(t *testing.T) {
	res, err := NewLoader("商品管理番号", 0, nil).Load([]byte("col_a,col_b\n1,2\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "parsing from the top") {
		t.Errorf("Warnings = %v, want a header-not-found advisory", res.Warnings)
	}
	if !reflect.DeepEqual(res.Table.Columns, []string{"col_a", "col_b"}) {
		t.Errorf("Columns = %v", res.Table.Columns)
	}
	if len(res.Table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(res.Table.Rows))
	}
}

func TestLoadPermissiveOnRaggedRows(t *testing.T) {
	raw := []byte("商品管理番号,キーワード\nA1,花瓶,余分\nB2\n")

	res, err := NewLoader("商品管理番号", 0, nil).Load(raw)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "structured parse failed") {
		t.Errorf("Warnings = %v, want a structured-parse advisory", res.Warnings)
	}
	if !reflect.DeepEqual(res.Table.Columns, []string{"商品管理番号", "キーワード"}) {
		t.Errorf("Columns = %v", res.Table.Columns)
	}
	want := [][]any{
		{"A1", "花瓶"},
		{"B2", ""},
	}
	if !reflect.DeepEqual(res.Table.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Table.Rows, want)
	}
}

func TestLoadEmptyUpload(t *testing.T) {
	if _, err := NewLoader("商品管理番号", 0, nil).Load(nil); err == nil {
		t.Fatal("Load(empty) should fail, every engine has nothing to parse")
	}
}

func TestLoadUsesCache(t *testing.T) {
	l := NewLoader("商品管理番号", 0, NewParseCache())
	raw := []byte("商品管理番号,キーワード\nA1,花瓶\n")

	first, err := l.Load(raw)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first.FromCache {
		t.Error("first load should parse, not hit the cache")
	}

	second, err := l.Load(raw)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !second.FromCache {
		t.Error("second load of identical bytes should hit the cache")
	}

	second.Table.Rows[0][0] = "mutated"
	third, _ := l.Load(raw)
	if third.Table.Rows[0][0] != "A1" {
		t.Errorf("cache entry leaked a caller mutation: %v", third.Table.Rows[0][0])
	}
}
