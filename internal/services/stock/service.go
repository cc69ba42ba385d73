// Package stock serves single-symbol chart, fundamentals and detail views
package stock

import (
	"context"
	"fmt"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

// Service implements StockService
type Service struct {
	charts       interfaces.ChartClient
	fundamentals interfaces.FundamentalsClient
	logger       *common.Logger
}

// NewService creates a new stock detail service
func NewService(charts interfaces.ChartClient, fundamentals interfaces.FundamentalsClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		charts:       charts,
		fundamentals: fundamentals,
		logger:       logger,
	}
}

// GetChart returns the price history for symbol. Empty rangeSpec and
// interval use the provider defaults (max, 1mo).
func (s *Service) GetChart(ctx context.Context, symbol, rangeSpec, interval string) (*models.Chart, error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	chart, err := s.charts.GetChart(ctx, sym, rangeSpec, interval)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).Msg("Chart fetch failed")
		return nil, fmt.Errorf("chart for %s: %w", sym, err)
	}
	return chart, nil
}

// GetFundamentals returns statement history and ratios for symbol.
func (s *Service) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	f, err := s.fundamentals.GetFundamentals(ctx, sym, models.FundamentalModules)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).Msg("Fundamentals fetch failed")
		return nil, fmt.Errorf("fundamentals for %s: %w", sym, err)
	}
	return f, nil
}

type detailPart struct {
	chart        *models.Chart
	fundamentals *models.Fundamentals
}

// GetDetail fetches the max-range monthly chart and the fundamentals
// concurrently. The chart is required; a fundamentals failure is logged and
// the detail is returned without them.
func (s *Service) GetDetail(ctx context.Context, symbol string) (*models.StockDetail, error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	parts := common.SettleAll(ctx, 2, 0, func(ctx context.Context, i int) (detailPart, error) {
		if i == 0 {
			c, err := s.GetChart(ctx, sym, "", "")
			return detailPart{chart: c}, err
		}
		f, err := s.GetFundamentals(ctx, sym)
		return detailPart{fundamentals: f}, err
	})

	if err := parts[0].Err; err != nil {
		return nil, err
	}

	detail := &models.StockDetail{
		Symbol:                    sym,
		Chart:                     parts[0].Value.chart,
		FiftyTwoWeekChangePercent: FiftyTwoWeekChange(parts[0].Value.chart),
		PeriodChangePercent:       PeriodChange(parts[0].Value.chart),
	}
	if parts[1].OK() {
		detail.Fundamentals = parts[1].Value.fundamentals
	} else {
		s.logger.Info().Str("symbol", sym).Msg("Returning detail without fundamentals")
	}

	return detail, nil
}

// FiftyTwoWeekChange is the distance of the market price from the 52-week
// high in percent, 0 when the high is unknown.
func FiftyTwoWeekChange(c *models.Chart) float64 {
	if c == nil || c.Meta.FiftyTwoWeekHigh <= 0 {
		return 0
	}
	return (c.Meta.RegularMarketPrice - c.Meta.FiftyTwoWeekHigh) / c.Meta.FiftyTwoWeekHigh * 100
}

// PeriodChange is the percent move from the first to the last close in the
// chart, skipping bars without a close.
func PeriodChange(c *models.Chart) float64 {
	if c == nil {
		return 0
	}
	_, closes := c.Closes()
	if len(closes) < 2 || closes[0] <= 0 {
		return 0
	}
	first, last := closes[0], closes[len(closes)-1]
	return (last - first) / first * 100
}

// RenderPriceChart draws the chart's closes as a PNG.
func (s *Service) RenderPriceChart(chart *models.Chart) ([]byte, error) {
	return RenderPriceChart(chart)
}

// Ensure Service implements StockService
var _ interfaces.StockService = (*Service)(nil)
