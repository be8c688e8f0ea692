package rakuten

import "testing"

func TestShopName(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		want      string
		wantFound bool
	}{
		{
			name:      "rms convention",
			filename:  "rpp_keyword_reports_hanakobo_20250131.csv",
			want:      "hanakobo",
			wantFound: true,
		},
		{
			name:      "shop id stops at the first underscore",
			filename:  "rpp_keyword_reports_shop_extra_20250131.csv",
			want:      "shop",
			wantFound: true,
		},
		{
			name:      "renamed download",
			filename:  "レポート(1).csv",
			want:      "レポート(1).csv",
			wantFound: false,
		},
		{
			name:      "empty",
			filename:  "",
			want:      "",
			wantFound: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ShopName(tt.filename)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("ShopName(%q) = %q, %v, want %q, %v",
					tt.filename, got, found, tt.want, tt.wantFound)
			}
		})
	}
}
