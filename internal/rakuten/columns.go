// Package rakuten holds the column-level knowledge about the two RMS
// exports this service reconciles: the RPP keyword advertising report and
// the product performance report. Names here are the normalized forms,
// ASCII parentheses and no surrounding space.
package rakuten

import "github.com/ignite/rpp-analyzer/internal/ingest"

// KeyColumn joins the two reports. It doubles as the sentinel the loader
// hunts for when the header row hides below banner lines.
const KeyColumn = "商品管理番号"

// Suffixes tag column names that collide across the two reports after the
// join, so both readings stay addressable.
const (
	SuffixRPP     = "_RPP"
	SuffixProduct = "_商品"
)

// Columns the filter, scatter, and correlation stages address directly.
const (
	ColKeyword     = "キーワード"
	ColProductName = "商品名"
	ColCPCActual   = "CPC実績(合計)"
	ColClicks      = "クリック数(合計)"
	ColConversion  = "転換率"
	ColROAS720     = "ROAS(合計720時間)(%)"
	ColStock       = "在庫数"
	ColReviewScore = "レビュー総合評価(点)"
)

// RPPSpec lists the numeric columns of the RPP keyword report. Everything
// else in that report stays text.
var RPPSpec = ingest.ColumnSpec{
	"目安CPC":           ingest.KindCurrency,
	"キーワードCPC":        ingest.KindCurrency,
	"実績額(合計)":         ingest.KindCurrency,
	"CPC実績(合計)":       ingest.KindCurrency,
	"実績額(新規)":         ingest.KindCurrency,
	"CPC実績(新規)":       ingest.KindCurrency,
	"実績額(既存)":         ingest.KindCurrency,
	"CPC実績(既存)":       ingest.KindCurrency,
	"売上金額(合計12時間)":    ingest.KindCurrency,
	"注文獲得単価(合計12時間)":  ingest.KindCurrency,
	"売上金額(合計720時間)":   ingest.KindCurrency,
	"注文獲得単価(合計720時間)": ingest.KindCurrency,

	"CTR(%)":          ingest.KindPercent,
	"CVR(合計12時間)(%)":  ingest.KindPercent,
	"ROAS(合計12時間)(%)": ingest.KindPercent,
	"CVR(合計720時間)(%)": ingest.KindPercent,
	ColROAS720:        ingest.KindPercent,

	ColClicks:       ingest.KindCount,
	"クリック数(新規)":     ingest.KindCount,
	"クリック数(既存)":     ingest.KindCount,
	"売上件数(合計12時間)":  ingest.KindCount,
	"売上件数(合計720時間)": ingest.KindCount,
}

// ProductSpec lists the numeric columns of the product performance report.
// レビュー総合評価(点) is a plain rating with no formatting to strip.
var ProductSpec = ingest.ColumnSpec{
	"売上":  ingest.KindCurrency,
	"客単価": ingest.KindCurrency,

	ColConversion: ingest.KindPercent,
	"離脱率":         ingest.KindPercent,

	"売上件数":         ingest.KindCount,
	"売上個数":         ingest.KindCount,
	"アクセス人数":       ingest.KindCount,
	"ユニークユーザー数":    ingest.KindCount,
	"総購入件数":        ingest.KindCount,
	"新規購入件数":       ingest.KindCount,
	"リピート購入件数":     ingest.KindCount,
	"未購入アクセス人数":    ingest.KindCount,
	"レビュー投稿数":      ingest.KindCount,
	"総レビュー数":       ingest.KindCount,
	"滞在時間(秒)":      ingest.KindCount,
	"直帰数":          ingest.KindCount,
	"離脱数":          ingest.KindCount,
	"お気に入り登録ユーザ数":  ingest.KindCount,
	"お気に入り総ユーザ数":   ingest.KindCount,
	ColStock:        ingest.KindCount,
	"在庫0日日数":       ingest.KindCount,

	ColReviewScore: ingest.KindNumeric,
}

// CorrelationCandidates are probed in this order; only the ones the joined
// table actually has enter the matrix.
var CorrelationCandidates = []string{
	ColCPCActual,
	ColClicks,
	ColROAS720,
	ColConversion,
	"客単価",
	ColReviewScore,
	"CVR(合計720時間)(%)",
	"CTR(%)",
	"実績額(合計)",
}

// ScatterColumns must all be present before filtering: x, y, point size,
// point color.
var ScatterColumns = []string{ColCPCActual, ColConversion, ColClicks, ColROAS720}

// HoverColumns annotate scatter points when the join produced them.
var HoverColumns = []string{ColKeyword, ColProductName, KeyColumn, ColStock}
