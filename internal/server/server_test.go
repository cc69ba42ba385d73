package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stocklens/internal/app"
	"github.com/bobmcallan/stocklens/internal/clients/yahoo"
	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/models"
)

// --- Mocks ---

type mockHeatmapService struct {
	view  *models.HeatmapView
	err   error
	index string
	opts  models.ViewOptions
	panic bool
}

func (m *mockHeatmapService) IndexHeatmap(_ context.Context, indexID string, opts models.ViewOptions) (*models.HeatmapView, error) {
	if m.panic {
		panic("boom")
	}
	m.index = indexID
	m.opts = opts
	return m.view, m.err
}

type mockStockService struct {
	chart        *models.Chart
	chartErr     error
	fundamentals *models.Fundamentals
	fundErr      error
	detail       *models.StockDetail
	detailErr    error
	png          []byte
	renderErr    error
	lastSymbol   string
	lastRange    string
}

func (m *mockStockService) GetChart(_ context.Context, symbol, rangeSpec, _ string) (*models.Chart, error) {
	m.lastSymbol = symbol
	m.lastRange = rangeSpec
	return m.chart, m.chartErr
}
func (m *mockStockService) GetFundamentals(_ context.Context, symbol string) (*models.Fundamentals, error) {
	m.lastSymbol = symbol
	return m.fundamentals, m.fundErr
}
func (m *mockStockService) GetDetail(_ context.Context, symbol string) (*models.StockDetail, error) {
	m.lastSymbol = symbol
	return m.detail, m.detailErr
}
func (m *mockStockService) RenderPriceChart(_ *models.Chart) ([]byte, error) {
	return m.png, m.renderErr
}

func newTestServer(hm *mockHeatmapService, ss *mockStockService) *Server {
	a := &app.App{
		Config:         common.NewDefaultConfig(),
		Logger:         common.NewSilentLogger(),
		HeatmapService: hm,
		StockService:   ss,
		StartupTime:    time.Now(),
	}
	return NewServer(a)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(&mockHeatmapService{}, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/version")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)

	rec = do(t, s, http.MethodPost, "/api/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestIndexList(t *testing.T) {
	s := newTestServer(&mockHeatmapService{}, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/indexes")
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog IndexCatalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Indexes, 2)
	assert.Len(t, catalog.Filters, len(models.Buckets)+1)
	assert.Equal(t, models.BucketAll, catalog.Filters[0].Bucket)
	assert.Contains(t, catalog.Sorts, models.SortMarketCap)
}

func TestIndexHeatmap_OK(t *testing.T) {
	hm := &mockHeatmapService{view: &models.HeatmapView{
		Index: models.IndexNasdaq100, Total: 3, Count: 3,
		Rows: []models.HeatmapRow{
			{StockQuote: models.StockQuote{Symbol: "A"}},
			{StockQuote: models.StockQuote{Symbol: "B"}},
			{StockQuote: models.StockQuote{Symbol: "C"}},
		},
	}}
	s := newTestServer(hm, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/indexes/nasdaq100/heatmap?filter=green-50&sort=symbol&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "nasdaq100", hm.index)
	assert.Equal(t, models.BucketSmallDecline, hm.opts.Filter)
	assert.Equal(t, models.SortSymbol, hm.opts.Sort)

	var view models.HeatmapView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, 3, view.Total)
}

func TestIndexHeatmap_Defaults(t *testing.T) {
	hm := &mockHeatmapService{view: &models.HeatmapView{}}
	s := newTestServer(hm, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/indexes/sp500/heatmap")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BucketAll, hm.opts.Filter)
	assert.Equal(t, models.SortNone, hm.opts.Sort)
}

func TestIndexHeatmap_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"bad filter", "/api/indexes/nasdaq100/heatmap?filter=purple", nil, http.StatusBadRequest, "invalid_argument"},
		{"bad sort", "/api/indexes/nasdaq100/heatmap?sort=volume", nil, http.StatusBadRequest, "invalid_argument"},
		{"bad limit", "/api/indexes/nasdaq100/heatmap?limit=-1", nil, http.StatusBadRequest, "invalid_argument"},
		{"unknown index", "/api/indexes/ftse/heatmap", fmt.Errorf("%w: unknown index", models.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"index unavailable", "/api/indexes/nasdaq100/heatmap", fmt.Errorf("%w: %w", models.ErrIndexUnavailable, models.ErrSymbolResolution), http.StatusServiceUnavailable, "index_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm := &mockHeatmapService{view: &models.HeatmapView{}, err: tt.err}
			s := newTestServer(hm, &mockStockService{})

			rec := do(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestIndexHeatmap_UnavailableMessage(t *testing.T) {
	hm := &mockHeatmapService{err: fmt.Errorf("%w: %w", models.ErrIndexUnavailable, models.ErrSymbolResolution)}
	s := newTestServer(hm, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/indexes/nasdaq100/heatmap")
	assert.Equal(t, "could not fetch index data, please retry", decodeError(t, rec).Error)
}

func TestIndexRoutes_NotFound(t *testing.T) {
	s := newTestServer(&mockHeatmapService{}, &mockStockService{})
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/indexes/nasdaq100/members").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/stocks/AAPL/news").Code)
}

func TestStockDetail(t *testing.T) {
	ss := &mockStockService{detail: &models.StockDetail{Symbol: "AAPL", PeriodChangePercent: 12.5}}
	s := newTestServer(&mockHeatmapService{}, ss)

	rec := do(t, s, http.MethodGet, "/api/stocks/aapl")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", ss.lastSymbol)
	assert.Contains(t, rec.Body.String(), `"period_change_percent":12.5`)
}

func TestStockDetail_InvalidSymbol(t *testing.T) {
	ss := &mockStockService{}
	s := newTestServer(&mockHeatmapService{}, ss)

	rec := do(t, s, http.MethodGet, "/api/stocks/AA;PL")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ss.lastSymbol)

	rec = do(t, s, http.MethodGet, "/api/stocks/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStockChart_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"malformed", fmt.Errorf("chart for AAPL: %w", models.ErrMalformedResponse)},
		{"non-200", &yahoo.APIError{StatusCode: 500, Message: "upstream exploded", Endpoint: "/v8/finance/chart/AAPL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&mockHeatmapService{}, &mockStockService{chartErr: tt.err})
			rec := do(t, s, http.MethodGet, "/api/stocks/AAPL/chart")
			assert.Equal(t, http.StatusBadGateway, rec.Code)
			assert.Equal(t, "upstream_error", decodeError(t, rec).Code)
		})
	}
}

func TestStockDetail_UnknownSymbol(t *testing.T) {
	notFound := fmt.Errorf("chart for ZZZZ: %w", &yahoo.APIError{
		StatusCode: http.StatusNotFound,
		Message:    "Not Found: No data found, symbol may be delisted",
		Endpoint:   "/v8/finance/chart/ZZZZ",
	})
	ss := &mockStockService{detailErr: notFound, chartErr: notFound}
	s := newTestServer(&mockHeatmapService{}, ss)

	for _, target := range []string{"/api/stocks/ZZZZ", "/api/stocks/ZZZZ/chart"} {
		rec := do(t, s, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		resp := decodeError(t, rec)
		assert.Equal(t, "not_found", resp.Code)
		assert.Contains(t, resp.Error, "symbol may be delisted")
	}
}

func TestStockChart_JSONAndPNG(t *testing.T) {
	ss := &mockStockService{chart: &models.Chart{Symbol: "MSFT", Range: "1y"}, png: []byte("\x89PNGdata")}
	s := newTestServer(&mockHeatmapService{}, ss)

	rec := do(t, s, http.MethodGet, "/api/stocks/msft/chart?range=1y&interval=1d")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1y", ss.lastRange)
	assert.Contains(t, rec.Body.String(), `"symbol":"MSFT"`)

	rec = do(t, s, http.MethodGet, "/api/stocks/msft/chart.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNGdata", rec.Body.String())
}

func TestStockChartPNG_RenderFailure(t *testing.T) {
	ss := &mockStockService{chart: &models.Chart{Symbol: "MSFT"}, renderErr: fmt.Errorf("need at least 2 closes, got 0")}
	s := newTestServer(&mockHeatmapService{}, ss)

	rec := do(t, s, http.MethodGet, "/api/stocks/MSFT/chart.png")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStockFundamentals(t *testing.T) {
	ss := &mockStockService{fundamentals: &models.Fundamentals{Symbol: "NVDA", Currency: "USD"}}
	s := newTestServer(&mockHeatmapService{}, ss)

	rec := do(t, s, http.MethodGet, "/api/stocks/NVDA/fundamentals")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currency":"USD"`)

	ss.fundErr = fmt.Errorf("fundamentals for NVDA: %w", models.ErrMalformedResponse)
	rec = do(t, s, http.MethodGet, "/api/stocks/NVDA/fundamentals")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMiddleware_CORSAndCorrelation(t *testing.T) {
	s := newTestServer(&mockHeatmapService{}, &mockStockService{})

	rec := do(t, s, http.MethodOptions, "/api/indexes")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/api/health")
	assert.Len(t, rec.Header().Get("X-Correlation-ID"), 8)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Correlation-ID"))
}

func TestMiddleware_Recovery(t *testing.T) {
	s := newTestServer(&mockHeatmapService{panic: true}, &mockStockService{})

	rec := do(t, s, http.MethodGet, "/api/indexes/nasdaq100/heatmap")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec).Error)
}

func TestMCPEndpointMounted(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("stocklens", "test", mcpserver.WithToolCapabilities(true))
	mcpSrv.AddTool(mcp.NewTool("get_version"), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	a := &app.App{
		Config:         common.NewDefaultConfig(),
		Logger:         common.NewSilentLogger(),
		HeatmapService: &mockHeatmapService{},
		StockService:   &mockStockService{},
		MCPServer:      mcpSrv,
		StartupTime:    time.Now(),
	}
	s := NewServer(a)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stocklens")
}

func TestAddr(t *testing.T) {
	s := newTestServer(&mockHeatmapService{}, &mockStockService{})
	cfg := common.NewDefaultConfig()
	assert.Equal(t, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), s.Addr())
}

func TestIndexHeatmap_BadLimitSkipsAggregation(t *testing.T) {
	for _, limit := range []string{"abc", "-3", "1.5"} {
		hm := &mockHeatmapService{view: &models.HeatmapView{}}
		s := newTestServer(hm, &mockStockService{})

		rec := do(t, s, http.MethodGet, "/api/indexes/nasdaq100/heatmap?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
		assert.Empty(t, hm.index, "no aggregation for limit=%s", limit)
	}
}

func TestRequestResource(t *testing.T) {
	tests := []struct {
		target string
		key    string
		value  string
	}{
		{"/api/indexes/NASDAQ100/heatmap", "index", "nasdaq100"},
		{"/api/stocks/aapl", "symbol", "AAPL"},
		{"/api/stocks/brk-b/chart.png", "symbol", "BRK-B"},
		{"/api/indexes", "", ""},
		{"/api/health", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			key, value := requestResource(httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestLoggingMiddleware_RecordsResource(t *testing.T) {
	var buf bytes.Buffer
	a := &app.App{
		Config:         common.NewDefaultConfig(),
		Logger:         common.NewLoggerWithOutput("debug", &buf),
		HeatmapService: &mockHeatmapService{view: &models.HeatmapView{}},
		StockService:   &mockStockService{detail: &models.StockDetail{Symbol: "AAPL"}},
		StartupTime:    time.Now(),
	}
	s := NewServer(a)

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stocks/aapl", nil))
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/indexes/sp500/heatmap", nil))

	out := buf.String()
	assert.Contains(t, out, `"symbol":"AAPL"`)
	assert.Contains(t, out, `"index":"sp500"`)
	assert.Contains(t, out, `"status":200`)
}

func TestPathParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/indexes/sp500/heatmap", nil)
	assert.Equal(t, "sp500", PathParam(r, "/api/indexes/", "/heatmap"))
	assert.Equal(t, "sp500", PathParam(r, "/api/indexes/", ""))
	assert.Empty(t, PathParam(r, "/api/stocks/", ""))
}
