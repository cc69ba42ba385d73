package heatmap

import "github.com/bobmcallan/stocklens/internal/models"

// DeriveMetrics fills ChangePercent (distance from the 52-week high) and
// DailyChangePercent (move from the previous close). A zero denominator
// yields 0. Values are not clamped. The input slice is not modified.
func DeriveMetrics(quotes []models.StockQuote) []models.StockQuote {
	out := make([]models.StockQuote, len(quotes))
	for i, q := range quotes {
		q.ChangePercent = percentChange(q.CurrentPrice, q.FiftyTwoWeekHigh)
		q.DailyChangePercent = percentChange(q.CurrentPrice, q.PreviousClose)
		out[i] = q
	}
	return out
}

func percentChange(value, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return (value - base) / base * 100
}
