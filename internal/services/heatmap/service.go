// Package heatmap builds index heatmaps: resolve symbols, fetch quotes,
// derive metrics, then filter and sort
package heatmap

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

// Service implements HeatmapService
type Service struct {
	resolver       interfaces.SymbolResolver
	fetcher        interfaces.QuoteFetcher
	maxConcurrency int
	logger         *common.Logger
}

// NewService creates a new heatmap service
func NewService(resolver interfaces.SymbolResolver, fetcher interfaces.QuoteFetcher, cfg common.HeatmapConfig, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		resolver:       resolver,
		fetcher:        fetcher,
		maxConcurrency: cfg.MaxConcurrency,
		logger:         logger,
	}
}

// ParseViewOptions validates raw filter and sort strings.
func ParseViewOptions(filter, sortKey string) (models.ViewOptions, error) {
	bucket, ok := models.ParseBucket(filter)
	if !ok {
		return models.ViewOptions{}, fmt.Errorf("%w: unknown filter %q", models.ErrInvalidArgument, filter)
	}
	key, ok := models.ParseSortKey(sortKey)
	if !ok {
		return models.ViewOptions{}, fmt.Errorf("%w: unknown sort %q", models.ErrInvalidArgument, sortKey)
	}
	return models.ViewOptions{Filter: bucket, Sort: key}, nil
}

// IndexHeatmap builds the heatmap for one index. A resolver failure is
// reported as models.ErrIndexUnavailable before any quote is fetched.
// Individual quote failures only shrink the result.
func (s *Service) IndexHeatmap(ctx context.Context, indexID string, opts models.ViewOptions) (*models.HeatmapView, error) {
	index, ok := models.LookupIndex(indexID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown index %q", models.ErrInvalidArgument, indexID)
	}
	parsed, err := ParseViewOptions(string(opts.Filter), string(opts.Sort))
	if err != nil {
		return nil, err
	}
	opts = parsed

	start := time.Now()

	symbols, err := s.resolver.Resolve(ctx, index)
	if err != nil {
		s.logger.Error().Err(err).Str("index", string(index.ID)).Msg("Index symbols unavailable")
		return nil, fmt.Errorf("%w: %w", models.ErrIndexUnavailable, err)
	}

	if dups := countDuplicates(symbols); dups > 0 {
		s.logger.Warn().Str("index", string(index.ID)).Int("duplicates", dups).Msg("Symbol list contains duplicates, keeping them")
	}

	quotes := DeriveMetrics(Aggregate(ctx, s.fetcher, symbols, s.maxConcurrency))
	rows := Apply(quotes, opts)

	s.logger.Info().
		Str("index", string(index.ID)).
		Int("symbols", len(symbols)).
		Int("quotes", len(quotes)).
		Int("rows", len(rows)).
		Str("filter", string(opts.Filter)).
		Str("sort", string(opts.Sort)).
		Dur("elapsed", time.Since(start)).
		Msg("Heatmap built")

	info := opts.Filter.Info()
	view := &models.HeatmapView{
		Index:       index.ID,
		IndexName:   index.Name,
		Filter:      opts.Filter,
		FilterLabel: info.Label,
		Sort:        opts.Sort,
		Total:       len(quotes),
		Count:       len(rows),
		Rows:        make([]models.HeatmapRow, len(rows)),
	}
	for i, q := range rows {
		b := BucketFor(q.ChangePercent)
		view.Rows[i] = models.HeatmapRow{StockQuote: q, Bucket: b, Color: b.Info().Color}
	}

	return view, nil
}

func countDuplicates(symbols []string) int {
	seen := make(map[string]struct{}, len(symbols))
	dups := 0
	for _, sym := range symbols {
		if _, ok := seen[sym]; ok {
			dups++
			continue
		}
		seen[sym] = struct{}{}
	}
	return dups
}

// Ensure Service implements HeatmapService
var _ interfaces.HeatmapService = (*Service)(nil)
