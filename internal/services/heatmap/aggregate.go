package heatmap

import (
	"context"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

// Aggregate fetches every symbol concurrently and waits for all of them.
// Absent quotes and quotes without a positive price are dropped; the rest
// keep the order of symbols, duplicates included. limit caps in-flight
// fetches (0 = unbounded).
func Aggregate(ctx context.Context, fetcher interfaces.QuoteFetcher, symbols []string, limit int) []models.StockQuote {
	settled := common.SettleAll(ctx, len(symbols), limit, func(ctx context.Context, i int) (*models.StockQuote, error) {
		q, ok := fetcher.FetchQuote(ctx, symbols[i])
		if !ok {
			return nil, nil
		}
		return &q, nil
	})

	quotes := make([]models.StockQuote, 0, len(settled))
	for _, s := range settled {
		if !s.OK() || s.Value == nil {
			continue
		}
		if s.Value.CurrentPrice <= 0 {
			continue
		}
		quotes = append(quotes, *s.Value)
	}

	return quotes
}
