package session

import (
	"errors"
	"testing"

	"github.com/ignite/rpp-analyzer/internal/ingest"
)

func rppUpload() *Upload {
	t := ingest.NewTable([]string{"商品管理番号", "キーワード"})
	t.AppendRow([]any{"A1", "花瓶 北欧"})
	return &Upload{Filename: "rpp_keyword_reports_hanakobo_20250131.csv", Table: t}
}

func productUpload() *Upload {
	t := ingest.NewTable([]string{"商品管理番号", "商品名"})
	t.AppendRow([]any{"A1", "一輪挿し"})
	return &Upload{Filename: "product_report.csv", Table: t}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{"rpp", RoleRPP, true},
		{"product", RoleProduct, true},
		{"RPP", "", false},
		{"", "", false},
		{"other", "", false},
	}
	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseRole(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()

	s1 := st.Create()
	s2 := st.Create()
	if s1.ID() == s2.ID() {
		t.Fatal("Create() reused an id")
	}
	if st.Count() != 2 {
		t.Errorf("Count() = %d, want 2", st.Count())
	}

	got, ok := st.Get(s1.ID())
	if !ok || got != s1 {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	if _, ok := st.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	if !st.Delete(s1.ID()) {
		t.Error("Delete() of a live session should report true")
	}
	if st.Delete(s1.ID()) {
		t.Error("Delete() twice should report false")
	}
	if st.Count() != 1 {
		t.Errorf("Count() = %d, want 1", st.Count())
	}
}

func TestDeriveRequiresBothUploads(t *testing.T) {
	s := NewStore().Create()

	if _, err := s.Derive("商品管理番号", "_RPP", "_商品"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Derive() on empty session = %v, want ErrIncomplete", err)
	}

	s.SetUpload(RoleRPP, rppUpload())
	if _, err := s.Derive("商品管理番号", "_RPP", "_商品"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Derive() with one upload = %v, want ErrIncomplete", err)
	}
	if _, ok := s.Joined(); ok {
		t.Error("Joined() should stay empty until Derive succeeds")
	}

	s.SetUpload(RoleProduct, productUpload())
	joined, err := s.Derive("商品管理番号", "_RPP", "_商品")
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(joined.Rows) != 1 || joined.Rows[0][2] != "一輪挿し" {
		t.Errorf("joined = %v", joined.Rows)
	}

	got, ok := s.Joined()
	if !ok || got != joined {
		t.Error("Joined() should return the derived table")
	}
}

func TestReplacingUploadDropsJoin(t *testing.T) {
	s := NewStore().Create()
	s.SetUpload(RoleRPP, rppUpload())
	s.SetUpload(RoleProduct, productUpload())
	if _, err := s.Derive("商品管理番号", "_RPP", "_商品"); err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	s.SetUpload(RoleRPP, rppUpload())
	if _, ok := s.Joined(); ok {
		t.Error("replacing an upload should invalidate the joined view")
	}

	up, ok := s.Upload(RoleRPP)
	if !ok || up.Filename != "rpp_keyword_reports_hanakobo_20250131.csv" {
		t.Errorf("Upload() = %+v, %v", up, ok)
	}
}

func TestShop(t *testing.T) {
	s := NewStore().Create()
	if name, ok := s.Shop(); ok || name != "" {
		t.Errorf("Shop() on fresh session = %q, %v", name, ok)
	}
	s.SetShop("hanakobo", true)
	if name, ok := s.Shop(); !ok || name != "hanakobo" {
		t.Errorf("Shop() = %q, %v", name, ok)
	}
}
