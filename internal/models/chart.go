package models

import "time"

// Chart is a price history for one symbol over a range and interval.
type Chart struct {
	Symbol   string       `json:"symbol"`
	Range    string       `json:"range"`
	Interval string       `json:"interval"`
	Meta     ChartMeta    `json:"meta"`
	Points   []ChartPoint `json:"points"`
}

// ChartMeta carries the quote context returned alongside a chart.
type ChartMeta struct {
	Currency             string    `json:"currency"`
	ExchangeName         string    `json:"exchange_name"`
	InstrumentType       string    `json:"instrument_type"`
	Timezone             string    `json:"timezone"`
	ExchangeTimezoneName string    `json:"exchange_timezone_name"`
	RegularMarketPrice   float64   `json:"regular_market_price"`
	RegularMarketTime    time.Time `json:"regular_market_time"`
	PreviousClose        float64   `json:"previous_close"`
	ChartPreviousClose   float64   `json:"chart_previous_close"`
	FiftyTwoWeekHigh     float64   `json:"fifty_two_week_high"`
	FiftyTwoWeekLow      float64   `json:"fifty_two_week_low"`
	DataGranularity      string    `json:"data_granularity"`
	ValidRanges          []string  `json:"valid_ranges,omitempty"`
}

// ChartPoint is one bar. The provider emits nulls for bars without trades,
// so every value is optional.
type ChartPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      *float64  `json:"open"`
	High      *float64  `json:"high"`
	Low       *float64  `json:"low"`
	Close     *float64  `json:"close"`
	AdjClose  *float64  `json:"adj_close,omitempty"`
	Volume    *int64    `json:"volume"`
}

// Closes returns the bars that have a close price, in order.
func (c *Chart) Closes() ([]time.Time, []float64) {
	ts := make([]time.Time, 0, len(c.Points))
	closes := make([]float64, 0, len(c.Points))
	for _, p := range c.Points {
		if p.Close == nil {
			continue
		}
		ts = append(ts, p.Timestamp)
		closes = append(closes, *p.Close)
	}
	return ts, closes
}
