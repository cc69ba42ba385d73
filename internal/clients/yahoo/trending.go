package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/bobmcallan/stocklens/internal/interfaces"
)

// trendingSymbolsPath selects every quote symbol across all trending result sets.
const trendingSymbolsPath = "$.finance.result[*].quotes[*].symbol"

// TrendingCount is the number of symbols requested from the trending endpoint.
var TrendingCount = 100

// GetTrendingSymbols lists trending tickers for a region (e.g. "US").
// Non-string and empty entries are dropped; order is preserved.
func (c *Client) GetTrendingSymbols(ctx context.Context, region string) ([]string, error) {
	if region == "" {
		region = "US"
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(TrendingCount))

	path := "/v1/finance/trending/" + url.PathEscape(strings.ToUpper(region))

	var doc interface{}
	if err := c.get(ctx, path, params, &doc); err != nil {
		return nil, err
	}

	found, err := jsonpath.Get(trendingSymbolsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract trending symbols: %w", err)
	}

	values, ok := found.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected trending payload shape %T", found)
	}

	symbols := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			symbols = append(symbols, strings.TrimSpace(s))
		}
	}

	return symbols, nil
}

// Ensure Client implements TrendingClient
var _ interfaces.TrendingClient = (*Client)(nil)
