// Package format renders quote values for tables and reports
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/stocklens/internal/models"
	"github.com/bobmcallan/stocklens/internal/services/heatmap"
)

// DefaultCurrency is used when a chart or fundamentals payload names none.
const DefaultCurrency = money.USD

// Currency formats amount with the currency's symbol, grouping and fraction
// digits, e.g. $1,234.56. Unknown codes fall back to USD.
func Currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	cur := money.GetCurrency(code)
	if cur == nil {
		code = DefaultCurrency
		cur = money.GetCurrency(code)
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// MarketCap abbreviates a capitalisation as $1.2T, $3.4B or $5.6M, falling
// back to full currency below a million. Absent caps render as N/A.
func MarketCap(v *float64) string {
	if v == nil || *v <= 0 {
		return "N/A"
	}
	d := decimal.NewFromFloat(*v)
	switch {
	case *v >= 1e12:
		return "$" + d.Div(decimal.New(1, 12)).StringFixed(1) + "T"
	case *v >= 1e9:
		return "$" + d.Div(decimal.New(1, 9)).StringFixed(1) + "B"
	case *v >= 1e6:
		return "$" + d.Div(decimal.New(1, 6)).StringFixed(1) + "M"
	default:
		return Currency(*v, DefaultCurrency)
	}
}

// Percent formats v with two decimals and an explicit sign for non-negative
// values, e.g. +3.45% or -25.00%.
func Percent(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	s := d.StringFixed(2) + "%"
	if d.Sign() >= 0 {
		return "+" + s
	}
	return s
}

// HeatColor returns the display band for a distance from the 52-week high.
// The value is clamped to [-100, 0] first, so gains share the near-high colour.
func HeatColor(changePercent float64) models.BucketInfo {
	clamped := changePercent
	if clamped > 0 {
		clamped = 0
	}
	if clamped < -100 {
		clamped = -100
	}
	return heatmap.BucketFor(clamped).Info()
}

// Compact abbreviates large statement values (e.g. $383.3B, -$11.0B) and
// prints smaller ones in full.
func Compact(v float64, code string) string {
	abs := v
	sign := ""
	if v < 0 {
		abs = -v
		sign = "-"
	}
	d := decimal.NewFromFloat(abs)
	symbol := "$"
	if cur := money.GetCurrency(strings.ToUpper(code)); cur != nil {
		symbol = cur.Grapheme
	}
	switch {
	case abs >= 1e12:
		return sign + symbol + d.Div(decimal.New(1, 12)).StringFixed(1) + "T"
	case abs >= 1e9:
		return sign + symbol + d.Div(decimal.New(1, 9)).StringFixed(1) + "B"
	case abs >= 1e6:
		return sign + symbol + d.Div(decimal.New(1, 6)).StringFixed(1) + "M"
	default:
		return Currency(v, code)
	}
}

// Number prints a ratio with up to two decimals.
func Number(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
