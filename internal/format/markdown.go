package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/stocklens/internal/models"
)

// HeatmapMarkdown renders a heatmap view as a markdown table.
func HeatmapMarkdown(view *models.HeatmapView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s Heatmap\n\n", view.IndexName))
	sb.WriteString(fmt.Sprintf("**Filter:** %s | **Sort:** %s | **Showing:** %d of %d\n\n",
		view.FilterLabel, view.Sort, view.Count, view.Total))

	if len(view.Rows) == 0 {
		sb.WriteString("_No stocks in this range._\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Name | Price | Day | From 52w High | Market Cap | Band |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|---|\n")
	for _, r := range view.Rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			r.Symbol,
			escapeCell(r.Name),
			Currency(r.CurrentPrice, DefaultCurrency),
			Percent(r.DailyChangePercent),
			Percent(r.ChangePercent),
			MarketCap(r.MarketCap),
			r.Bucket,
		))
	}

	return sb.String()
}

// highlightKeys are the ratios shown first in a detail report, in order.
var highlightKeys = []struct {
	key   string
	label string
	pct   bool
}{
	{"currentPrice", "Current Price", false},
	{"targetMeanPrice", "Target Price", false},
	{"totalRevenue", "Revenue", false},
	{"revenueGrowth", "Revenue Growth", true},
	{"grossMargins", "Gross Margin", true},
	{"profitMargins", "Profit Margin", true},
	{"returnOnEquity", "Return on Equity", true},
	{"debtToEquity", "Debt to Equity", false},
	{"forwardPE", "Forward P/E", false},
	{"trailingEps", "Trailing EPS", false},
	{"beta", "Beta", false},
}

// statementRows are the line items shown per statement period.
var statementRows = []struct {
	key   string
	label string
}{
	{"totalRevenue", "Revenue"},
	{"grossProfit", "Gross Profit"},
	{"netIncome", "Net Income"},
	{"totalAssets", "Total Assets"},
	{"totalLiab", "Total Liabilities"},
	{"totalStockholderEquity", "Shareholder Equity"},
	{"totalCashFromOperatingActivities", "Operating Cash Flow"},
	{"capitalExpenditures", "Capital Expenditure"},
}

// DetailMarkdown renders a stock detail as markdown.
func DetailMarkdown(d *models.StockDetail) string {
	var sb strings.Builder
	currency := DefaultCurrency
	if d.Chart != nil && d.Chart.Meta.Currency != "" {
		currency = d.Chart.Meta.Currency
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", d.Symbol))

	if c := d.Chart; c != nil {
		m := c.Meta
		if m.ExchangeName != "" {
			sb.WriteString(fmt.Sprintf("**Exchange:** %s | **Currency:** %s\n\n", m.ExchangeName, currency))
		}
		sb.WriteString("| | |\n|---|---:|\n")
		sb.WriteString(fmt.Sprintf("| Price | %s |\n", Currency(m.RegularMarketPrice, currency)))
		if m.PreviousClose > 0 {
			sb.WriteString(fmt.Sprintf("| Previous Close | %s |\n", Currency(m.PreviousClose, currency)))
		}
		if m.FiftyTwoWeekHigh > 0 {
			sb.WriteString(fmt.Sprintf("| 52w High | %s |\n", Currency(m.FiftyTwoWeekHigh, currency)))
		}
		if m.FiftyTwoWeekLow > 0 {
			sb.WriteString(fmt.Sprintf("| 52w Low | %s |\n", Currency(m.FiftyTwoWeekLow, currency)))
		}
		sb.WriteString(fmt.Sprintf("| From 52w High | %s |\n", Percent(d.FiftyTwoWeekChangePercent)))
		sb.WriteString(fmt.Sprintf("| Change (%s) | %s |\n", c.Range, Percent(d.PeriodChangePercent)))
		if !m.RegularMarketTime.IsZero() {
			sb.WriteString(fmt.Sprintf("| As of | %s |\n", m.RegularMarketTime.Format("2006-01-02 15:04 MST")))
		}
		sb.WriteString("\n")
	}

	f := d.Fundamentals
	if f == nil {
		sb.WriteString("_Fundamentals unavailable._\n")
		return sb.String()
	}
	if f.Currency != "" {
		currency = f.Currency
	}

	sb.WriteString("## Key Figures\n\n| Metric | Value |\n|---|---:|\n")
	shown := map[string]bool{}
	for _, h := range highlightKeys {
		v, ok := f.FinancialData[h.key]
		if !ok {
			v, ok = f.KeyStatistics[h.key]
		}
		if !ok {
			continue
		}
		shown[h.key] = true
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", h.label, figure(v, h.pct, h.key, currency)))
	}
	sb.WriteString("\n")

	writeStatements(&sb, "Income Statement", f.IncomeStatements, currency)
	writeStatements(&sb, "Balance Sheet", f.BalanceSheets, currency)
	writeStatements(&sb, "Cash Flow", f.CashflowStatement, currency)

	var extra []string
	for k := range f.KeyStatistics {
		if !shown[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		sb.WriteString("## Key Statistics\n\n| Field | Value |\n|---|---:|\n")
		for _, k := range extra {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", k, Number(f.KeyStatistics[k])))
		}
	}

	return sb.String()
}

func writeStatements(sb *strings.Builder, title string, statements []models.Statement, currency string) {
	if len(statements) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("## %s\n\n| |", title))
	for _, st := range statements {
		sb.WriteString(fmt.Sprintf(" %s |", st.EndDate.Format("2006")))
	}
	sb.WriteString("\n|---|")
	for range statements {
		sb.WriteString("---:|")
	}
	sb.WriteString("\n")

	for _, row := range statementRows {
		present := false
		for _, st := range statements {
			if _, ok := st.Get(row.key); ok {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s |", row.label))
		for _, st := range statements {
			if v, ok := st.Get(row.key); ok {
				sb.WriteString(" " + Compact(v, currency) + " |")
			} else {
				sb.WriteString(" - |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func figure(v float64, pct bool, key, currency string) string {
	switch {
	case pct:
		return Percent(v * 100)
	case key == "currentPrice" || key == "targetMeanPrice" || key == "trailingEps":
		return Currency(v, currency)
	case key == "totalRevenue":
		return Compact(v, currency)
	default:
		return Number(v)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
