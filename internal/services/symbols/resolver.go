// Package symbols resolves the member list of an index through an ordered
// chain of sources
package symbols

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

// Source is one link in the resolution chain. Fetch produces candidates and
// Valid decides whether they are good enough for the index to stop walking the chain.
type Source struct {
	Name  string
	Fetch func(ctx context.Context, index models.Index) ([]string, error)
	Valid func(index models.Index, symbols []string) bool
}

// Resolver walks its sources in order and returns the first valid list.
type Resolver struct {
	sources []Source
	logger  *common.Logger
}

// NewResolver creates a resolver over an explicit source chain.
func NewResolver(logger *common.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Resolver{sources: sources, logger: logger}
}

// NewDefaultResolver builds the feed → trending → static chain from config.
// trending may be nil to skip that source.
func NewDefaultResolver(
	feed interfaces.ConstituentsClient,
	trending interfaces.TrendingClient,
	cfg common.ResolverConfig,
	logger *common.Logger,
) *Resolver {
	var sources []Source

	if feed != nil {
		sources = append(sources, ConstituentsSource(feed, func(index models.Index) int {
			return cfg.ThresholdFor(string(index.ID))
		}))
	}
	if trending != nil && cfg.UseTrending {
		sources = append(sources, TrendingSource(trending, cfg.TrendingRegion, cfg.TrendingCap))
	}
	if cfg.UseStaticFallback {
		sources = append(sources, StaticSource())
	}

	return NewResolver(logger, sources...)
}

// Resolve returns the symbols of the first source that validates, or
// models.ErrSymbolResolution joined with every source error.
func (r *Resolver) Resolve(ctx context.Context, index models.Index) ([]string, error) {
	var errs []error

	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		symbols, err := src.Fetch(ctx, index)
		if err != nil {
			r.logger.Warn().Err(err).Str("index", string(index.ID)).Str("source", src.Name).Msg("Symbol source failed")
			errs = append(errs, fmt.Errorf("%s: %w", src.Name, err))
			continue
		}

		if src.Valid != nil && !src.Valid(index, symbols) {
			r.logger.Warn().Str("index", string(index.ID)).Str("source", src.Name).Int("count", len(symbols)).Msg("Symbol source returned an implausible list")
			errs = append(errs, fmt.Errorf("%s: %d symbols rejected", src.Name, len(symbols)))
			continue
		}

		if len(symbols) == 0 {
			errs = append(errs, fmt.Errorf("%s: no symbols", src.Name))
			continue
		}

		r.logger.Debug().Str("index", string(index.ID)).Str("source", src.Name).Int("count", len(symbols)).Msg("Resolved index symbols")
		return symbols, nil
	}

	return nil, fmt.Errorf("%w for %s: %w", models.ErrSymbolResolution, index.ID, errors.Join(errs...))
}

// ConstituentsSource reads the published feed for the index. The list is only
// accepted when it holds more than threshold(index) symbols, and never when empty.
func ConstituentsSource(feed interfaces.ConstituentsClient, threshold func(models.Index) int) Source {
	return Source{
		Name: "constituents",
		Fetch: func(ctx context.Context, index models.Index) ([]string, error) {
			return feed.GetConstituents(ctx, index.Feed)
		},
		Valid: func(index models.Index, symbols []string) bool {
			return len(symbols) > 0 && len(symbols) > threshold(index)
		},
	}
}

// TrendingSource uses the provider's trending tickers, truncated to limit
// when limit > 0. It does not depend on the index.
func TrendingSource(trending interfaces.TrendingClient, region string, limit int) Source {
	return Source{
		Name: "trending",
		Fetch: func(ctx context.Context, _ models.Index) ([]string, error) {
			symbols, err := trending.GetTrendingSymbols(ctx, region)
			if err != nil {
				return nil, err
			}
			if limit > 0 && len(symbols) > limit {
				symbols = symbols[:limit]
			}
			return symbols, nil
		},
		Valid: func(_ models.Index, symbols []string) bool {
			return len(symbols) > 0
		},
	}
}

// StaticSource returns the built-in basket for the index.
func StaticSource() Source {
	return Source{
		Name: "static",
		Fetch: func(_ context.Context, index models.Index) ([]string, error) {
			return StaticSymbols(index.ID), nil
		},
	}
}

// Ensure Resolver implements SymbolResolver
var _ interfaces.SymbolResolver = (*Resolver)(nil)
