package symbols

import "github.com/bobmcallan/stocklens/internal/models"

// nasdaqLargeCaps is the last-resort NASDAQ-100 basket.
var nasdaqLargeCaps = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META", "AVGO", "ORCL", "COST",
	"NFLX", "ADBE", "PEP", "AMD", "QCOM", "INTC", "CMCSA", "TXN", "AMGN", "HON",
	"GILD", "INTU", "BKNG", "ISRG", "VRTX", "REGN", "MDLZ", "ADP", "MELI", "KLAC",
	"LRCX", "CSX", "SBUX", "MRVL", "CRWD", "FTNT", "ADSK", "ASML", "NXPI", "ABNB",
	"WDAY", "MAR", "CHTR", "CPRT", "FANG", "PAYX", "MNST", "AEP", "FAST", "ROST",
}

// sp500LargeCaps is the last-resort S&P 500 basket.
var sp500LargeCaps = []string{
	"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "BRK-B", "LLY", "AVGO", "JPM",
	"TSLA", "UNH", "XOM", "V", "MA", "PG", "JNJ", "HD", "COST", "MRK",
	"ABBV", "CVX", "CRM", "BAC", "NFLX", "KO", "PEP", "AMD", "TMO", "WMT",
	"ADBE", "LIN", "MCD", "CSCO", "ACN", "ABT", "ORCL", "DHR", "WFC", "DIS",
	"TXN", "PM", "INTU", "CAT", "VZ", "AMGN", "IBM", "QCOM", "GE", "NOW",
}

// StaticSymbols returns a copy of the built-in basket for an index.
func StaticSymbols(id models.IndexID) []string {
	var src []string
	switch id {
	case models.IndexSP500:
		src = sp500LargeCaps
	default:
		src = nasdaqLargeCaps
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
