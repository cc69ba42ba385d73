package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"

	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

type quoteResponse struct {
	QuoteResponse struct {
		Result []models.RawQuote `json:"result"`
		Error  *errorBody        `json:"error"`
	} `json:"quoteResponse"`
}

// GetQuote retrieves one quote from /v7/finance/quote. Fields Yahoo leaves out
// stay nil. An empty result set returns (nil, nil).
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.RawQuote, error) {
	params := url.Values{}
	params.Set("symbols", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/v7/finance/quote", params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote %s: %s", symbol, resp.QuoteResponse.Error)
	}

	for i := range resp.QuoteResponse.Result {
		if strings.EqualFold(resp.QuoteResponse.Result[i].Symbol, symbol) {
			return &resp.QuoteResponse.Result[i], nil
		}
	}
	if len(resp.QuoteResponse.Result) > 0 {
		return &resp.QuoteResponse.Result[0], nil
	}

	return nil, nil
}

// FinanceGoProvider fetches quotes through the piquette/finance-go equity API.
type FinanceGoProvider struct {
	get func(symbol string) (*finance.Equity, error)
}

// NewFinanceGoProvider creates a quote provider backed by finance-go.
func NewFinanceGoProvider() *FinanceGoProvider {
	return &FinanceGoProvider{get: equity.Get}
}

// GetQuote implements interfaces.QuoteProvider. finance-go has no context
// support, so ctx is only checked before the call.
func (p *FinanceGoProvider) GetQuote(ctx context.Context, symbol string) (*models.RawQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eq, err := p.get(symbol)
	if err != nil {
		return nil, fmt.Errorf("finance-go equity %s: %w", symbol, err)
	}
	if eq == nil {
		return nil, nil
	}

	return equityToRaw(eq), nil
}

// equityToRaw maps finance-go's zero-valued fields onto the optional record.
// finance-go cannot tell "absent" from zero, so zero is treated as absent.
func equityToRaw(eq *finance.Equity) *models.RawQuote {
	raw := &models.RawQuote{
		Symbol:                     eq.Symbol,
		LongName:                   nonEmpty(eq.LongName),
		ShortName:                  nonEmpty(eq.ShortName),
		RegularMarketPrice:         nonZero(eq.RegularMarketPrice),
		RegularMarketPreviousClose: nonZero(eq.RegularMarketPreviousClose),
		FiftyTwoWeekHigh:           nonZero(eq.FiftyTwoWeekHigh),
		MarketCap:                  nonZero(float64(eq.MarketCap)),
	}
	return raw
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

// Ensure both providers implement QuoteProvider
var (
	_ interfaces.QuoteProvider = (*Client)(nil)
	_ interfaces.QuoteProvider = (*FinanceGoProvider)(nil)
)
