package models

import "strings"

// Bucket is a performance band of ChangePercent.
type Bucket string

const (
	BucketAll                    Bucket = "all"
	BucketNearHigh               Bucket = "near-high"
	BucketSmallDecline           Bucket = "small-decline"
	BucketModerateDecline        Bucket = "moderate-decline"
	BucketLargeDecline           Bucket = "large-decline"
	BucketSevereDecline          Bucket = "severe-decline"
	BucketVerySevereDecline      Bucket = "very-severe-decline"
	BucketExtremelySevereDecline Bucket = "extremely-severe-decline"
	BucketExtremelyLow           Bucket = "extremely-low"
)

// BucketInfo describes a bucket for display. Lower is the inclusive lower
// bound of the band; the band extends up to the previous bucket's Lower.
type BucketInfo struct {
	Bucket Bucket  `json:"id"`
	Alias  string  `json:"alias"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Lower  float64 `json:"lower"`
}

// Buckets lists the bands from closest to the 52-week high to furthest.
// The last band has no lower bound.
var Buckets = []BucketInfo{
	{Bucket: BucketNearHigh, Alias: "green-100", Label: "At/Near High (0% to -2%)", Color: "#15803d", Lower: -2},
	{Bucket: BucketSmallDecline, Alias: "green-50", Label: "Small Decline (-2% to -5%)", Color: "#4ade80", Lower: -5},
	{Bucket: BucketModerateDecline, Alias: "blue-50", Label: "Moderate Decline (-5% to -10%)", Color: "#60a5fa", Lower: -10},
	{Bucket: BucketLargeDecline, Alias: "yellow-50", Label: "Large Decline (-10% to -15%)", Color: "#eab308", Lower: -15},
	{Bucket: BucketSevereDecline, Alias: "orange-50", Label: "Severe Decline (-15% to -25%)", Color: "#f97316", Lower: -25},
	{Bucket: BucketVerySevereDecline, Alias: "red-50", Label: "Very Severe Decline (-25% to -35%)", Color: "#f87171", Lower: -35},
	{Bucket: BucketExtremelySevereDecline, Alias: "red-100", Label: "Extremely Severe Decline (-35% to -50%)", Color: "#ef4444", Lower: -50},
	{Bucket: BucketExtremelyLow, Alias: "red-200", Label: "Extremely Low (<-50%)", Color: "#dc2626"},
}

// BucketAllLabel is the label shown when no filter is applied.
const BucketAllLabel = "All Stocks"

// ParseBucket accepts a bucket id or its colour alias. Empty means all.
func ParseBucket(s string) (Bucket, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == string(BucketAll) {
		return BucketAll, true
	}
	for _, b := range Buckets {
		if key == string(b.Bucket) || key == b.Alias {
			return b.Bucket, true
		}
	}
	return "", false
}

// Info returns the display info for b. BucketAll has only a label.
func (b Bucket) Info() BucketInfo {
	for _, info := range Buckets {
		if info.Bucket == b {
			return info
		}
	}
	return BucketInfo{Bucket: BucketAll, Label: BucketAllLabel}
}

// SortKey orders a heatmap.
type SortKey string

const (
	SortNone          SortKey = "none"
	SortChangePercent SortKey = "changePercent"
	SortDailyChange   SortKey = "dailyChange"
	SortMarketCap     SortKey = "marketCap"
	SortSymbol        SortKey = "symbol"
	SortCurrentPrice  SortKey = "currentPrice"
)

// SortKeys lists every supported sort key.
var SortKeys = []SortKey{SortNone, SortSymbol, SortCurrentPrice, SortDailyChange, SortChangePercent, SortMarketCap}

// ParseSortKey matches case-insensitively and accepts snake_case spellings. Empty means none.
func ParseSortKey(s string) (SortKey, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if key == "" {
		return SortNone, true
	}
	if key == "dailychangepercent" {
		return SortDailyChange, true
	}
	for _, k := range SortKeys {
		if strings.ToLower(string(k)) == key {
			return k, true
		}
	}
	return "", false
}

// ViewOptions is the request-scoped filter and sort selection.
type ViewOptions struct {
	Filter Bucket
	Sort   SortKey
}

// HeatmapRow is a quote annotated with its bucket for display.
type HeatmapRow struct {
	StockQuote
	Bucket Bucket `json:"bucket"`
	Color  string `json:"color"`
}

// HeatmapView is the filtered and sorted heatmap for one index.
// Total counts every aggregated quote, Count only the rows after filtering.
type HeatmapView struct {
	Index       IndexID      `json:"index"`
	IndexName   string       `json:"index_name"`
	Filter      Bucket       `json:"filter"`
	FilterLabel string       `json:"filter_label"`
	Sort        SortKey      `json:"sort"`
	Total       int          `json:"total"`
	Count       int          `json:"count"`
	Rows        []HeatmapRow `json:"stocks"`
}
