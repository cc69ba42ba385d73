package interfaces

import (
	"context"

	"github.com/bobmcallan/stocklens/internal/models"
)

// SymbolResolver produces the member symbols of an index
type SymbolResolver interface {
	// Resolve returns a non-empty symbol list or models.ErrSymbolResolution
	Resolve(ctx context.Context, index models.Index) ([]string, error)
}

// QuoteFetcher fetches one normalized quote, reporting absence instead of errors
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (models.StockQuote, bool)
}

// HeatmapService builds index heatmaps
type HeatmapService interface {
	// IndexHeatmap resolves, aggregates, annotates, filters and sorts one index
	IndexHeatmap(ctx context.Context, indexID string, opts models.ViewOptions) (*models.HeatmapView, error)
}

// StockService serves single-symbol detail views
type StockService interface {
	GetChart(ctx context.Context, symbol, rangeSpec, interval string) (*models.Chart, error)
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
	GetDetail(ctx context.Context, symbol string) (*models.StockDetail, error)
	RenderPriceChart(chart *models.Chart) ([]byte, error)
}
