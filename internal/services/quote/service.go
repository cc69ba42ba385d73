// Package quote fetches a single normalized quote with soft failure
package quote

import (
	"context"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

// Service implements QuoteFetcher over a primary provider with an optional
// fallback provider. Errors never leave this package: a symbol either yields
// a quote or is reported absent.
type Service struct {
	primary  interfaces.QuoteProvider
	fallback interfaces.QuoteProvider
	logger   *common.Logger
}

// NewService creates a new quote fetcher.
// fallback may be nil, in which case only the primary provider is asked.
func NewService(primary, fallback interfaces.QuoteProvider, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// FetchQuote returns the normalized quote for symbol and true, or a zero
// quote and false when no provider produced a record.
func (s *Service) FetchQuote(ctx context.Context, symbol string) (models.StockQuote, bool) {
	raw, err := s.primary.GetQuote(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quote fetch failed")
	}

	if raw == nil && s.fallback != nil && ctx.Err() == nil {
		s.logger.Debug().Str("symbol", symbol).Msg("Trying fallback quote provider")
		raw, err = s.fallback.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Fallback quote fetch failed")
		}
	}

	if raw == nil {
		if err == nil {
			s.logger.Warn().Str("symbol", symbol).Msg("No quote returned")
		}
		return models.StockQuote{}, false
	}

	return raw.Normalize(symbol), true
}

// Ensure Service implements QuoteFetcher
var _ interfaces.QuoteFetcher = (*Service)(nil)
