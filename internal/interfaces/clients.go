// Package interfaces defines service contracts for stocklens
package interfaces

import (
	"context"

	"github.com/bobmcallan/stocklens/internal/models"
)

// QuoteProvider returns the provider record for one symbol.
// A nil quote with a nil error means the provider has no record.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*models.RawQuote, error)
}

// ChartClient provides price history
type ChartClient interface {
	// GetChart retrieves a chart for symbol over rangeSpec at interval (e.g. "max", "1mo")
	GetChart(ctx context.Context, symbol, rangeSpec, interval string) (*models.Chart, error)
}

// FundamentalsClient provides statement history and ratios
type FundamentalsClient interface {
	GetFundamentals(ctx context.Context, symbol string, modules []string) (*models.Fundamentals, error)
}

// TrendingClient lists currently trending symbols for a region
type TrendingClient interface {
	GetTrendingSymbols(ctx context.Context, region string) ([]string, error)
}

// ConstituentsClient lists the member symbols of an index from a published feed
type ConstituentsClient interface {
	GetConstituents(ctx context.Context, feed string) ([]string, error)
}
