package models

import "time"

// FundamentalModules are the quoteSummary modules a detail page requests.
var FundamentalModules = []string{
	"incomeStatementHistory",
	"balanceSheetHistory",
	"cashflowStatementHistory",
	"financialData",
	"defaultKeyStatistics",
}

// Statement is one period of a financial statement. The provider's field set
// varies by company, so line items are kept by their provider key.
type Statement struct {
	EndDate time.Time          `json:"end_date"`
	Values  map[string]float64 `json:"values"`
}

// Get returns a line item and whether it was present.
func (s Statement) Get(key string) (float64, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Fundamentals is the statement history and ratios for one symbol.
type Fundamentals struct {
	Symbol            string             `json:"symbol"`
	Currency          string             `json:"currency,omitempty"`
	IncomeStatements  []Statement        `json:"income_statements"`
	BalanceSheets     []Statement        `json:"balance_sheets"`
	CashflowStatement []Statement        `json:"cashflow_statements"`
	FinancialData     map[string]float64 `json:"financial_data"`
	KeyStatistics     map[string]float64 `json:"key_statistics"`
}

// StockDetail combines what a single-symbol page shows.
// Fundamentals is nil when that fetch failed; the chart is mandatory.
type StockDetail struct {
	Symbol                    string        `json:"symbol"`
	Chart                     *Chart        `json:"chart"`
	Fundamentals              *Fundamentals `json:"fundamentals,omitempty"`
	FiftyTwoWeekChangePercent float64       `json:"fifty_two_week_change_percent"`
	PeriodChangePercent       float64       `json:"period_change_percent"`
}
