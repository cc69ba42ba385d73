package heatmap

import (
	"sort"

	"github.com/bobmcallan/stocklens/internal/models"
)

// Sort orders quotes by key in place. The sort is stable, so ties keep
// pipeline order; SortNone leaves the slice untouched.
func Sort(quotes []models.StockQuote, key models.SortKey) {
	var less func(a, b models.StockQuote) bool

	switch key {
	case models.SortChangePercent:
		less = func(a, b models.StockQuote) bool { return a.ChangePercent > b.ChangePercent }
	case models.SortDailyChange:
		less = func(a, b models.StockQuote) bool { return a.DailyChangePercent > b.DailyChangePercent }
	case models.SortMarketCap:
		less = func(a, b models.StockQuote) bool { return a.MarketCapOrZero() > b.MarketCapOrZero() }
	case models.SortSymbol:
		less = func(a, b models.StockQuote) bool { return a.Symbol < b.Symbol }
	case models.SortCurrentPrice:
		less = func(a, b models.StockQuote) bool { return a.CurrentPrice > b.CurrentPrice }
	default:
		return
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return less(quotes[i], quotes[j])
	})
}

// Apply filters then sorts, returning a new slice.
func Apply(quotes []models.StockQuote, opts models.ViewOptions) []models.StockQuote {
	out := Filter(quotes, opts.Filter)
	Sort(out, opts.Sort)
	return out
}
