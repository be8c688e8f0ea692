//go:build ignore
// +build ignore

// Sample Report Generator for Manual Upload Testing
// This script writes a matching pair of Shift_JIS encoded Rakuten reports
// (an RPP keyword report and a product page report) that can be uploaded
// through the API for end-to-end testing without real store data.
//
// Usage:
//   go run scripts/generate_sample_reports.go \
//     --out-dir=/tmp/reports \
//     --shop=samplestore \
//     --rows=50

package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
)

var keywords = []string{
	"花瓶 北欧", "花瓶 ガラス", "マグカップ ペア", "皿 セット", "箸置き かわいい",
	"急須 常滑焼", "タンブラー 保温", "弁当箱 2段", "コースター 木製", "グラス 食洗機",
}

var productNames = []string{
	"北欧風フラワーベース 陶器製", "ハンドメイドガラス一輪挿し", "ペアマグカップ ギフト箱入り",
	"美濃焼プレート 5枚セット", "箸置き 猫 5個セット", "常滑焼 急須 320ml",
	"真空断熱タンブラー 450ml", "二段弁当箱 ランチベルト付き", "天然木コースター 4枚組",
	"耐熱グラス 360ml",
}

func main() {
	outDir := flag.String("out-dir", ".", "directory to write the reports into")
	shop := flag.String("shop", "samplestore", "shop name embedded in the RPP report filename")
	rows := flag.Int("rows", 50, "number of items to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	rng := rand.New(rand.NewSource(*seed))

	rppPath := filepath.Join(*outDir, fmt.Sprintf("rpp_keyword_reports_%s_%s.csv", *shop, time.Now().Format("20060102")))
	productPath := filepath.Join(*outDir, "product_report.csv")

	if err := writeShiftJIS(rppPath, buildRPPReport(rng, *rows)); err != nil {
		log.Fatalf("write %s: %v", rppPath, err)
	}
	if err := writeShiftJIS(productPath, buildProductReport(rng, *rows)); err != nil {
		log.Fatalf("write %s: %v", productPath, err)
	}

	fmt.Printf("wrote %s\n", rppPath)
	fmt.Printf("wrote %s\n", productPath)
}

func buildRPPReport(rng *rand.Rand, rows int) string {
	var b strings.Builder
	// Real RPP exports carry banner lines above the header row.
	b.WriteString("RPPキーワードレポート\n")
	b.WriteString(fmt.Sprintf("集計期間,%s\n", time.Now().AddDate(0, -1, 0).Format("2006/01/02")))
	b.WriteString("商品管理番号,キーワード,目安CPC,キーワードCPC,実績額(合計),CPC実績(合計),クリック数(合計),CTR(%),CVR(合計720時間)(%),ROAS(合計720時間)(%),売上金額(合計720時間)\n")
	for i := 0; i < rows; i++ {
		clicks := 5 + rng.Intn(400)
		cpc := 15 + rng.Intn(120)
		spend := clicks * cpc
		sales := spend * (50 + rng.Intn(400)) / 100
		fmt.Fprintf(&b, "item-%03d,%s,%d円,%d円,\"%s円\",%d円,%d,%.2f%%,%.2f%%,%.1f%%,\"%s円\"\n",
			i+1,
			keywords[i%len(keywords)],
			cpc+rng.Intn(20),
			cpc,
			comma(spend),
			cpc,
			clicks,
			0.5+rng.Float64()*4,
			0.5+rng.Float64()*7,
			float64(sales)/float64(spend)*100,
			comma(sales),
		)
	}
	return b.String()
}

func buildProductReport(rng *rand.Rand, rows int) string {
	var b strings.Builder
	b.WriteString("商品管理番号,商品名,売上,売上件数,アクセス人数,転換率,客単価,レビュー総合評価(点),在庫数\n")
	for i := 0; i < rows; i++ {
		// Leave a few items unmatched so the joined view shows blanks.
		if rng.Intn(10) == 0 {
			continue
		}
		visits := 50 + rng.Intn(2000)
		orders := 1 + rng.Intn(visits/20+1)
		unitPrice := 800 + rng.Intn(5000)
		fmt.Fprintf(&b, "item-%03d,%s,\"%s円\",%d,%d,%.2f%%,%d円,%.2f,%d\n",
			i+1,
			productNames[i%len(productNames)],
			comma(orders*unitPrice),
			orders,
			visits,
			float64(orders)/float64(visits)*100,
			unitPrice,
			3+rng.Float64()*2,
			rng.Intn(200),
		)
	}
	return b.String()
}

func comma(n int) string {
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

func writeShiftJIS(path, text string) error {
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return os.WriteFile(path, encoded, 0o644)
}
