// Package app wires configuration, clients and services into the shared
// core used by cmd/stocklens-server and cmd/stocklens
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/stocklens/internal/clients/constituents"
	"github.com/bobmcallan/stocklens/internal/clients/yahoo"
	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/services/heatmap"
	"github.com/bobmcallan/stocklens/internal/services/quote"
	"github.com/bobmcallan/stocklens/internal/services/stock"
	"github.com/bobmcallan/stocklens/internal/services/symbols"
)

// Quote provider names accepted in [clients.yahoo] quote_provider.
const (
	QuoteProviderFinanceGo = "finance-go"
	QuoteProviderHTTP      = "http"
)

// App holds all initialized clients, services and the MCP server.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	YahooClient        *yahoo.Client
	ConstituentsClient interfaces.ConstituentsClient
	Resolver           interfaces.SymbolResolver
	QuoteFetcher       interfaces.QuoteFetcher
	HeatmapService     interfaces.HeatmapService
	StockService       interfaces.StockService
	MCPServer          *server.MCPServer
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: explicit path, STOCKLENS_CONFIG,
// stocklens.toml next to the binary, then config/stocklens.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("STOCKLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "stocklens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stocklens.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and builds the App.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	return NewAppWithConfig(config, logger)
}

// NewAppWithConfig builds the App from an already loaded config.
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	if logger == nil {
		logger = common.NewSilentLogger()
	}

	yc := config.Clients.Yahoo
	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(yc.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(yc.RateLimit),
		yahoo.WithTimeout(yc.GetTimeout()),
		yahoo.WithUserAgent(yc.UserAgent),
	)

	constituentsClient := constituents.NewClient(
		constituents.WithBaseURL(config.Clients.Constituents.BaseURL),
		constituents.WithLogger(logger),
		constituents.WithTimeout(config.Clients.Constituents.GetTimeout()),
	)

	var primary, fallback interfaces.QuoteProvider
	switch yc.QuoteProvider {
	case QuoteProviderHTTP:
		primary = yahooClient
	case QuoteProviderFinanceGo, "":
		primary = yahoo.NewFinanceGoProvider()
		fallback = yahooClient
	default:
		return nil, fmt.Errorf("unknown quote provider %q (want %s or %s)", yc.QuoteProvider, QuoteProviderFinanceGo, QuoteProviderHTTP)
	}

	resolver := symbols.NewDefaultResolver(constituentsClient, yahooClient, config.Resolver, logger)
	fetcher := quote.NewService(primary, fallback, logger)
	heatmapService := heatmap.NewService(resolver, fetcher, config.Heatmap, logger)
	stockService := stock.NewService(yahooClient, yahooClient, logger)

	mcpServer := server.NewMCPServer(
		"stocklens",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:             config,
		Logger:             logger,
		YahooClient:        yahooClient,
		ConstituentsClient: constituentsClient,
		Resolver:           resolver,
		QuoteFetcher:       fetcher,
		HeatmapService:     heatmapService,
		StockService:       stockService,
		MCPServer:          mcpServer,
		StartupTime:        startupStart,
	}

	a.registerTools()

	logger.Info().
		Str("quote_provider", yc.QuoteProvider).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createIndexHeatmapTool(), handleIndexHeatmap(a.HeatmapService, logger))
	s.AddTool(createStockDetailTool(), handleStockDetail(a.StockService, logger))
}
