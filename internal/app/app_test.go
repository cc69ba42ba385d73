package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/models"
)

// newUpstream fakes the constituents feed and the Yahoo quote endpoint on one
// server. The feed always fails so the resolver falls back.
func newUpstream(t *testing.T, quoteCalls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/constituents-"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/v1/finance/trending/"):
			w.WriteHeader(http.StatusServiceUnavailable)
		case r.URL.Path == "/v7/finance/quote":
			atomic.AddInt32(quoteCalls, 1)
			sym := r.URL.Query().Get("symbols")
			price := 92.0
			if sym == "AAPL" {
				price = 0
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"quoteResponse": map[string]interface{}{
					"result": []map[string]interface{}{{
						"symbol":                     sym,
						"regularMarketPrice":         price,
						"regularMarketPreviousClose": 100.0,
						"fiftyTwoWeekHigh":           100.0,
					}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *common.Config {
	cfg := common.NewDefaultConfig()
	cfg.Clients.Yahoo.BaseURL = baseURL
	cfg.Clients.Yahoo.QuoteProvider = QuoteProviderHTTP
	cfg.Clients.Yahoo.RateLimit = 1000
	cfg.Clients.Constituents.BaseURL = baseURL
	cfg.Heatmap.MaxConcurrency = 8
	return cfg
}

func TestNewAppWithConfig_HeatmapEndToEnd(t *testing.T) {
	var calls int32
	srv := newUpstream(t, &calls)

	a, err := NewAppWithConfig(testConfig(srv.URL), common.NewSilentLogger())
	require.NoError(t, err)

	view, err := a.HeatmapService.IndexHeatmap(context.Background(), "nasdaq100", models.ViewOptions{
		Filter: models.BucketModerateDecline,
		Sort:   models.SortSymbol,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(50), atomic.LoadInt32(&calls), "one quote call per static symbol")
	assert.Equal(t, 49, view.Total, "AAPL has no price and is dropped")
	assert.Equal(t, 49, view.Count, "every remaining quote sits 8% below its high")
	assert.Equal(t, "ABNB", view.Rows[0].Symbol)
	assert.InDelta(t, -8.0, view.Rows[0].ChangePercent, 1e-9)
	assert.InDelta(t, -8.0, view.Rows[0].DailyChangePercent, 1e-9)
}

func TestNewAppWithConfig_UnknownQuoteProvider(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Clients.Yahoo.QuoteProvider = "bloomberg"

	_, err := NewAppWithConfig(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bloomberg")
}

func TestNewAppWithConfig_FinanceGoDefault(t *testing.T) {
	a, err := NewAppWithConfig(common.NewDefaultConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, a.QuoteFetcher)
	assert.NotNil(t, a.StockService)
	assert.NotNil(t, a.MCPServer)
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "explicit.toml", ResolveConfigPath("explicit.toml"))

	t.Setenv("STOCKLENS_CONFIG", "/etc/stocklens.toml")
	assert.Equal(t, "/etc/stocklens.toml", ResolveConfigPath(""))
}
