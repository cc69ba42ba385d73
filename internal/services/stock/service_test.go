package stock

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stocklens/internal/clients/yahoo"
	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/models"
)

// --- Mocks ---

type mockCharts struct {
	mu    sync.Mutex
	chart *models.Chart
	err   error
	args  []string
}

func (m *mockCharts) GetChart(_ context.Context, symbol, rangeSpec, interval string) (*models.Chart, error) {
	m.mu.Lock()
	m.args = []string{symbol, rangeSpec, interval}
	m.mu.Unlock()
	return m.chart, m.err
}

type mockFundamentals struct {
	f       *models.Fundamentals
	err     error
	modules []string
}

func (m *mockFundamentals) GetFundamentals(_ context.Context, _ string, modules []string) (*models.Fundamentals, error) {
	m.modules = modules
	return m.f, m.err
}

func fp(v float64) *float64 { return &v }

func testChart(closes ...*float64) *models.Chart {
	c := &models.Chart{
		Symbol:   "AAPL",
		Range:    "max",
		Interval: "1mo",
		Meta: models.ChartMeta{
			Currency:           "USD",
			RegularMarketPrice: 150,
			FiftyTwoWeekHigh:   200,
		},
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, cl := range closes {
		c.Points = append(c.Points, models.ChartPoint{Timestamp: start.AddDate(0, i, 0), Close: cl})
	}
	return c
}

func TestGetDetail_CombinesChartAndFundamentals(t *testing.T) {
	charts := &mockCharts{chart: testChart(fp(100), nil, fp(125))}
	funds := &mockFundamentals{f: &models.Fundamentals{Symbol: "AAPL", Currency: "USD"}}
	svc := NewService(charts, funds, common.NewSilentLogger())

	d, err := svc.GetDetail(context.Background(), " aapl ")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", d.Symbol)
	assert.Equal(t, []string{"AAPL", "", ""}, charts.args)
	assert.Equal(t, models.FundamentalModules, funds.modules)
	require.NotNil(t, d.Fundamentals)
	assert.InDelta(t, -25.0, d.FiftyTwoWeekChangePercent, 1e-9)
	assert.InDelta(t, 25.0, d.PeriodChangePercent, 1e-9)
}

func TestGetDetail_FundamentalsFailureIsOptional(t *testing.T) {
	charts := &mockCharts{chart: testChart(fp(100), fp(90))}
	funds := &mockFundamentals{err: models.ErrMalformedResponse}
	svc := NewService(charts, funds, nil)

	d, err := svc.GetDetail(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Nil(t, d.Fundamentals)
	assert.NotNil(t, d.Chart)
	assert.InDelta(t, -10.0, d.PeriodChangePercent, 1e-9)
}

func TestGetDetail_ChartFailureIsFatal(t *testing.T) {
	charts := &mockCharts{err: models.ErrMalformedResponse}
	funds := &mockFundamentals{f: &models.Fundamentals{}}
	svc := NewService(charts, funds, nil)

	_, err := svc.GetDetail(context.Background(), "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestGetDetail_UnknownSymbolIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	client := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))
	svc := NewService(client, client, nil)

	_, err := svc.GetChart(context.Background(), "ZZZZ", "", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrMalformedResponse)

	_, err = svc.GetDetail(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetDetail_InvalidSymbol(t *testing.T) {
	charts := &mockCharts{}
	svc := NewService(charts, &mockFundamentals{}, nil)

	_, err := svc.GetDetail(context.Background(), "  ")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Nil(t, charts.args, "no upstream call for a bad symbol")
}

func TestGetChart_PassesRangeAndWrapsError(t *testing.T) {
	charts := &mockCharts{err: errors.New("boom")}
	svc := NewService(charts, &mockFundamentals{}, nil)

	_, err := svc.GetChart(context.Background(), "msft", "1y", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart for MSFT")
	assert.Equal(t, []string{"MSFT", "1y", "1d"}, charts.args)
}

func TestGetFundamentals_Invalid(t *testing.T) {
	svc := NewService(&mockCharts{}, &mockFundamentals{}, nil)
	_, err := svc.GetFundamentals(context.Background(), "A B")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestFiftyTwoWeekChange_ZeroHigh(t *testing.T) {
	c := testChart()
	c.Meta.FiftyTwoWeekHigh = 0
	assert.Equal(t, 0.0, FiftyTwoWeekChange(c))
	assert.Equal(t, 0.0, FiftyTwoWeekChange(nil))
}

func TestPeriodChange_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, PeriodChange(nil))
	assert.Equal(t, 0.0, PeriodChange(testChart(fp(10))))
	assert.Equal(t, 0.0, PeriodChange(testChart(fp(0), fp(10))))
	assert.Equal(t, 0.0, PeriodChange(testChart(nil, fp(10), nil)))
}

func TestRenderPriceChart_PNG(t *testing.T) {
	png, err := RenderPriceChart(testChart(fp(100), fp(110), nil, fp(105), fp(120)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output is a PNG")

	svc := NewService(&mockCharts{}, &mockFundamentals{}, nil)
	png2, err := svc.RenderPriceChart(testChart(fp(120), fp(100)))
	require.NoError(t, err)
	assert.NotEmpty(t, png2)
}

func TestRenderPriceChart_TooFewPoints(t *testing.T) {
	_, err := RenderPriceChart(testChart(fp(100), nil))
	require.Error(t, err)

	_, err = RenderPriceChart(nil)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
