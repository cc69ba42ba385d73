package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for stocklens
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Clients     ClientsConfig  `toml:"clients"`
	Resolver    ResolverConfig `toml:"resolver"`
	Heatmap     HeatmapConfig  `toml:"heatmap"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds upstream API client configurations
type ClientsConfig struct {
	Yahoo        YahooConfig        `toml:"yahoo"`
	Constituents ConstituentsConfig `toml:"constituents"`
}

// YahooConfig holds Yahoo Finance API configuration.
// QuoteProvider selects the quote backend: "finance-go" (default) or "http".
type YahooConfig struct {
	BaseURL       string `toml:"base_url"`
	QuoteProvider string `toml:"quote_provider"`
	RateLimit     int    `toml:"rate_limit"`
	Timeout       string `toml:"timeout"`
	UserAgent     string `toml:"user_agent"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// ConstituentsConfig holds the index-constituents feed configuration
type ConstituentsConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ConstituentsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ResolverConfig controls the symbol source fallback chain.
// PlausibilityThreshold is exclusive: the feed must return more than this many symbols.
// Thresholds overrides it per index id; 0 accepts any non-empty list.
type ResolverConfig struct {
	PlausibilityThreshold int            `toml:"plausibility_threshold"`
	Thresholds            map[string]int `toml:"thresholds"`
	UseTrending           bool           `toml:"use_trending"`
	TrendingRegion        string         `toml:"trending_region"`
	TrendingCap           int            `toml:"trending_cap"`
	UseStaticFallback     bool           `toml:"use_static_fallback"`
}

// ThresholdFor returns the feed threshold for an index id.
func (c ResolverConfig) ThresholdFor(indexID string) int {
	if n, ok := c.Thresholds[strings.ToLower(indexID)]; ok && n >= 0 {
		return n
	}
	return c.PlausibilityThreshold
}

// HeatmapConfig controls the quote aggregation fan-out.
// MaxConcurrency of 0 launches one fetch per symbol at once.
type HeatmapConfig struct {
	MaxConcurrency int    `toml:"max_concurrency"`
	DefaultFilter  string `toml:"default_filter"`
	DefaultSort    string `toml:"default_sort"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:       "https://query1.finance.yahoo.com",
				QuoteProvider: "finance-go",
				RateLimit:     20,
				Timeout:       "15s",
				UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
			Constituents: ConstituentsConfig{
				BaseURL: "https://yfiua.github.io/index-constituents",
				Timeout: "10s",
			},
		},
		Resolver: ResolverConfig{
			PlausibilityThreshold: 50,
			Thresholds:            map[string]int{"sp500": 0},
			UseTrending:           true,
			TrendingRegion:        "US",
			TrendingCap:           100,
			UseStaticFallback:     true,
		},
		Heatmap: HeatmapConfig{
			MaxConcurrency: 0,
			DefaultFilter:  "all",
			DefaultSort:    "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKLENS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKLENS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKLENS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKLENS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("STOCKLENS_YAHOO_BASE_URL"); v != "" {
		config.Clients.Yahoo.BaseURL = v
	}
	if v := os.Getenv("STOCKLENS_QUOTE_PROVIDER"); v != "" {
		config.Clients.Yahoo.QuoteProvider = strings.ToLower(v)
	}
	if v := os.Getenv("STOCKLENS_CONSTITUENTS_BASE_URL"); v != "" {
		config.Clients.Constituents.BaseURL = v
	}

	if v := os.Getenv("STOCKLENS_PLAUSIBILITY_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.Resolver.PlausibilityThreshold = n
		}
	}
	if v := os.Getenv("STOCKLENS_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.Heatmap.MaxConcurrency = n
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
