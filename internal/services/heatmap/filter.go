package heatmap

import "github.com/bobmcallan/stocklens/internal/models"

// BucketFor places a ChangePercent in exactly one band. Anything at or above
// -2, including gains past the recorded high, is near-high.
func BucketFor(changePercent float64) models.Bucket {
	for _, b := range models.Buckets {
		if b.Bucket == models.BucketExtremelyLow || changePercent >= b.Lower {
			return b.Bucket
		}
	}
	return models.BucketExtremelyLow
}

// Filter keeps the quotes in bucket, preserving order. BucketAll keeps everything.
func Filter(quotes []models.StockQuote, bucket models.Bucket) []models.StockQuote {
	if bucket == models.BucketAll || bucket == "" {
		out := make([]models.StockQuote, len(quotes))
		copy(out, quotes)
		return out
	}

	out := make([]models.StockQuote, 0, len(quotes))
	for _, q := range quotes {
		if BucketFor(q.ChangePercent) == bucket {
			out = append(out, q)
		}
	}
	return out
}
