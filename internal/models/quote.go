package models

// RawQuote is a quote as the provider returned it. Every field may be missing;
// Normalize is the only place defaults are substituted.
type RawQuote struct {
	Symbol                     string   `json:"symbol"`
	LongName                   *string  `json:"longName"`
	ShortName                  *string  `json:"shortName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	MarketCap                  *float64 `json:"marketCap"`
}

// StockQuote is one row of an index heatmap.
// MarketCap is nil when the provider had no (or a zero) capitalisation.
type StockQuote struct {
	Symbol             string   `json:"symbol"`
	Name               string   `json:"name"`
	CurrentPrice       float64  `json:"current_price"`
	PreviousClose      float64  `json:"previous_close"`
	FiftyTwoWeekHigh   float64  `json:"fifty_two_week_high"`
	MarketCap          *float64 `json:"market_cap,omitempty"`
	ChangePercent      float64  `json:"change_percent"`
	DailyChangePercent float64  `json:"daily_change_percent"`
}

// MarketCapOrZero returns the market cap, treating absent as zero.
func (q StockQuote) MarketCapOrZero() float64 {
	if q.MarketCap == nil {
		return 0
	}
	return *q.MarketCap
}

// Normalize converts a provider record into a StockQuote for symbol.
// Missing numbers become 0, a missing or zero market cap stays nil, and the
// name falls back from long name to short name to the symbol itself.
// Derived metrics are left at zero.
func (r *RawQuote) Normalize(symbol string) StockQuote {
	q := StockQuote{
		Symbol:           symbol,
		Name:             symbol,
		CurrentPrice:     floatOrZero(r.RegularMarketPrice),
		PreviousClose:    floatOrZero(r.RegularMarketPreviousClose),
		FiftyTwoWeekHigh: floatOrZero(r.FiftyTwoWeekHigh),
	}

	if r.LongName != nil && *r.LongName != "" {
		q.Name = *r.LongName
	} else if r.ShortName != nil && *r.ShortName != "" {
		q.Name = *r.ShortName
	}

	if mc := floatOrZero(r.MarketCap); mc > 0 {
		q.MarketCap = &mc
	}

	return q
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
