package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/stocklens/internal/models"
)

func TestHeatmapMarkdown(t *testing.T) {
	mc := 3.1e12
	view := &models.HeatmapView{
		Index:       models.IndexNasdaq100,
		IndexName:   "NASDAQ-100",
		Filter:      models.BucketAll,
		FilterLabel: models.BucketAllLabel,
		Sort:        models.SortNone,
		Total:       2,
		Count:       1,
		Rows: []models.HeatmapRow{{
			StockQuote: models.StockQuote{
				Symbol:             "MSFT",
				Name:               "Microsoft | Corp",
				CurrentPrice:       410.5,
				MarketCap:          &mc,
				ChangePercent:      -1.25,
				DailyChangePercent: 0.5,
			},
			Bucket: models.BucketNearHigh,
		}},
	}

	md := HeatmapMarkdown(view)
	assert.Contains(t, md, "# NASDAQ-100 Heatmap")
	assert.Contains(t, md, "**Showing:** 1 of 2")
	assert.Contains(t, md, "| MSFT | Microsoft \\| Corp | $410.50 | +0.50% | -1.25% | $3.1T | near-high |")
}

func TestHeatmapMarkdown_Empty(t *testing.T) {
	md := HeatmapMarkdown(&models.HeatmapView{IndexName: "S&P 500", FilterLabel: "Extremely Low (<-50%)"})
	assert.Contains(t, md, "_No stocks in this range._")
}

func TestDetailMarkdown(t *testing.T) {
	d := &models.StockDetail{
		Symbol: "AAPL",
		Chart: &models.Chart{
			Symbol: "AAPL",
			Range:  "max",
			Meta: models.ChartMeta{
				Currency:           "USD",
				ExchangeName:       "NMS",
				RegularMarketPrice: 150,
				FiftyTwoWeekHigh:   200,
				RegularMarketTime:  time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
			},
		},
		Fundamentals: &models.Fundamentals{
			Symbol:        "AAPL",
			Currency:      "USD",
			FinancialData: map[string]float64{"currentPrice": 150, "returnOnEquity": 1.47},
			KeyStatistics: map[string]float64{"forwardPE": 28.1, "sharesOutstanding": 15334099968},
			IncomeStatements: []models.Statement{
				{EndDate: time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"totalRevenue": 394328000000}},
				{EndDate: time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"totalRevenue": 383285000000, "netIncome": 96995000000}},
			},
		},
		FiftyTwoWeekChangePercent: -25,
		PeriodChangePercent:       1200,
	}

	md := DetailMarkdown(d)
	assert.Contains(t, md, "# AAPL")
	assert.Contains(t, md, "| Price | $150.00 |")
	assert.Contains(t, md, "| From 52w High | -25.00% |")
	assert.Contains(t, md, "| Change (max) | +1200.00% |")
	assert.Contains(t, md, "| Return on Equity | +147.00% |")
	assert.Contains(t, md, "| Forward P/E | 28.1 |")
	assert.Contains(t, md, "| | 2022 | 2023 |")
	assert.Contains(t, md, "| Revenue | $394.3B | $383.3B |")
	assert.Contains(t, md, "| Net Income | - | $97.0B |")
	assert.Contains(t, md, "| sharesOutstanding | 15334099968 |")
	assert.NotContains(t, md, "| forwardPE |")
}

func TestDetailMarkdown_NoFundamentals(t *testing.T) {
	md := DetailMarkdown(&models.StockDetail{Symbol: "AAPL", Chart: &models.Chart{Range: "max"}})
	assert.Contains(t, md, "_Fundamentals unavailable._")
}

func TestCompactAndNumber(t *testing.T) {
	assert.Equal(t, "-$11.0B", Compact(-10959000000, "USD"))
	assert.Equal(t, "$2.5T", Compact(2.5e12, "USD"))
	assert.Equal(t, "$999.00", Compact(999, "USD"))
	assert.Equal(t, "1.26", Number(1.2599))
	assert.Equal(t, "28.1", Number(28.1))
}
