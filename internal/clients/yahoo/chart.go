package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

const (
	DefaultChartRange    = "max"
	DefaultChartInterval = "1mo"
)

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *errorBody    `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency             string   `json:"currency"`
		Symbol               string   `json:"symbol"`
		ExchangeName         string   `json:"exchangeName"`
		InstrumentType       string   `json:"instrumentType"`
		RegularMarketTime    int64    `json:"regularMarketTime"`
		Timezone             string   `json:"timezone"`
		ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
		RegularMarketPrice   float64  `json:"regularMarketPrice"`
		ChartPreviousClose   float64  `json:"chartPreviousClose"`
		PreviousClose        float64  `json:"previousClose"`
		FiftyTwoWeekHigh     *float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow      *float64 `json:"fiftyTwoWeekLow"`
		DataGranularity      string   `json:"dataGranularity"`
		Range                string   `json:"range"`
		ValidRanges          []string `json:"validRanges"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// GetChart retrieves price history from /v8/finance/chart. A missing result
// or a populated chart.error is reported as models.ErrMalformedResponse.
func (c *Client) GetChart(ctx context.Context, symbol, rangeSpec, interval string) (*models.Chart, error) {
	if rangeSpec == "" {
		rangeSpec = DefaultChartRange
	}
	if interval == "" {
		interval = DefaultChartInterval
	}

	params := url.Values{}
	params.Set("range", rangeSpec)
	params.Set("interval", interval)

	path := "/v8/finance/chart/" + url.PathEscape(symbol)

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: chart %s: %s", models.ErrMalformedResponse, symbol, resp.Chart.Error)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no chart result for %s", models.ErrMalformedResponse, symbol)
	}

	return convertChart(symbol, rangeSpec, interval, &resp.Chart.Result[0]), nil
}

func convertChart(symbol, rangeSpec, interval string, r *chartResult) *models.Chart {
	chart := &models.Chart{
		Symbol:   strings.ToUpper(symbol),
		Range:    rangeSpec,
		Interval: interval,
		Meta: models.ChartMeta{
			Currency:             r.Meta.Currency,
			ExchangeName:         r.Meta.ExchangeName,
			InstrumentType:       r.Meta.InstrumentType,
			Timezone:             r.Meta.Timezone,
			ExchangeTimezoneName: r.Meta.ExchangeTimezoneName,
			RegularMarketPrice:   r.Meta.RegularMarketPrice,
			PreviousClose:        r.Meta.PreviousClose,
			ChartPreviousClose:   r.Meta.ChartPreviousClose,
			DataGranularity:      r.Meta.DataGranularity,
			ValidRanges:          r.Meta.ValidRanges,
		},
		Points: make([]models.ChartPoint, len(r.Timestamp)),
	}
	if r.Meta.Symbol != "" {
		chart.Symbol = r.Meta.Symbol
	}
	if r.Meta.RegularMarketTime > 0 {
		chart.Meta.RegularMarketTime = time.Unix(r.Meta.RegularMarketTime, 0).UTC()
	}
	if r.Meta.FiftyTwoWeekHigh != nil {
		chart.Meta.FiftyTwoWeekHigh = *r.Meta.FiftyTwoWeekHigh
	}
	if r.Meta.FiftyTwoWeekLow != nil {
		chart.Meta.FiftyTwoWeekLow = *r.Meta.FiftyTwoWeekLow
	}

	for i, ts := range r.Timestamp {
		p := models.ChartPoint{Timestamp: time.Unix(ts, 0).UTC()}
		if len(r.Indicators.Quote) > 0 {
			q := r.Indicators.Quote[0]
			p.Open = floatAt(q.Open, i)
			p.High = floatAt(q.High, i)
			p.Low = floatAt(q.Low, i)
			p.Close = floatAt(q.Close, i)
			if i < len(q.Volume) {
				p.Volume = q.Volume[i]
			}
		}
		if len(r.Indicators.AdjClose) > 0 {
			p.AdjClose = floatAt(r.Indicators.AdjClose[0].AdjClose, i)
		}
		chart.Points[i] = p
	}

	return chart
}

func floatAt(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

// Ensure Client implements ChartClient
var _ interfaces.ChartClient = (*Client)(nil)
