// Package constituents reads published index membership lists
package constituents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
)

const (
	DefaultBaseURL = "https://yfiua.github.io/index-constituents"
	DefaultTimeout = 10 * time.Second
)

// Client fetches constituents-{feed}.json files
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new constituents feed client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-200 response from the feed host
type APIError struct {
	StatusCode int
	Message    string
	Feed       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("constituents feed error: %s (status: %d, feed: %s)", e.Message, e.StatusCode, e.Feed)
}

// GetConstituents downloads the member list for feed (e.g. "nasdaq100", "sp500").
// Entries may be objects keyed symbol, Symbol or ticker, or bare strings.
// Entries that yield no usable string are skipped; order is preserved.
func (c *Client) GetConstituents(ctx context.Context, feed string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/constituents-%s.json", c.baseURL, url.PathEscape(feed))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("feed", feed).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Constituents request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Feed:       feed,
		}
	}

	var entries []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode constituents %s: %w", feed, err)
	}

	symbols := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s := entrySymbol(entry); s != "" {
			symbols = append(symbols, s)
		}
	}

	return symbols, nil
}

// symbolKeys are tried in order; the first non-empty string wins.
var symbolKeys = []string{"symbol", "Symbol", "ticker"}

func entrySymbol(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, key := range symbolKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Ensure Client implements ConstituentsClient
var _ interfaces.ConstituentsClient = (*Client)(nil)
