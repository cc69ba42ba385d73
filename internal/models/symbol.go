package models

import (
	"fmt"
	"strings"
)

// MaxSymbolLength bounds a ticker accepted from callers.
const MaxSymbolLength = 16

// NormalizeSymbol trims and upper-cases a ticker and rejects anything outside
// letters, digits and . - ^ = (the characters Yahoo tickers use).
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: symbol is required", ErrInvalidArgument)
	}
	if len(s) > MaxSymbolLength {
		return "", fmt.Errorf("%w: symbol %q is too long", ErrInvalidArgument, s)
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^', r == '=':
		default:
			return "", fmt.Errorf("%w: symbol %q contains %q", ErrInvalidArgument, s, r)
		}
	}
	return s, nil
}
