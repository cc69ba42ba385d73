package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/bobmcallan/stocklens/internal/app"
	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/format"
	"github.com/bobmcallan/stocklens/internal/models"
	"github.com/bobmcallan/stocklens/internal/server"
	"github.com/bobmcallan/stocklens/internal/services/heatmap"
)

var commands = []subcommands.Command{
	&heatmapCmd{},
	&detailCmd{},
	&indexesCmd{},
	&serveCmd{},
	&versionCmd{},
}

func loadApp() (*app.App, error) {
	path := *configPath
	if path == "" {
		path = os.Getenv("STOCKLENS_CONFIG")
	}
	return app.NewApp(path)
}

type heatmapCmd struct {
	index    string
	filter   string
	sort     string
	limit    int
	markdown bool
}

func (*heatmapCmd) Name() string     { return "heatmap" }
func (*heatmapCmd) Synopsis() string { return "display an index heatmap by distance from the 52-week high" }
func (*heatmapCmd) Usage() string {
	return `stocklens heatmap -index <id> [-filter <bucket>] [-sort <key>] [-limit n] [-md]

  Resolves the index members, fetches a quote per member and prints every
  stock coloured by how far it trades below its 52-week high.
`
}

func (c *heatmapCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.index, "index", string(models.IndexNasdaq100), "index id (nasdaq100, sp500)")
	f.StringVar(&c.filter, "filter", "", "bucket id or colour alias (e.g. moderate-decline, blue-50)")
	f.StringVar(&c.sort, "sort", "", "sort key (symbol, currentPrice, dailyChange, changePercent, marketCap)")
	f.IntVar(&c.limit, "limit", 0, "maximum rows to print (0 prints all)")
	f.BoolVar(&c.markdown, "md", false, "render as markdown instead of a table")
}

func (c *heatmapCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := heatmap.ParseViewOptions(c.filter, c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	view, err := a.HeatmapService.IndexHeatmap(ctx, c.index, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.limit > 0 && c.limit < len(view.Rows) {
		view.Rows = view.Rows[:c.limit]
	}

	if c.markdown {
		printMarkdown(format.HeatmapMarkdown(view))
		return subcommands.ExitSuccess
	}

	fmt.Println(heatmapTitle(view))
	fmt.Println(heatmapTable(view))
	return subcommands.ExitSuccess
}

type detailCmd struct {
	symbol string
	png    string
}

func (*detailCmd) Name() string     { return "detail" }
func (*detailCmd) Synopsis() string { return "display price history and fundamentals for a stock" }
func (*detailCmd) Usage() string {
	return `stocklens detail -symbol <ticker> [-png <file>]

  Prints the full-history price summary and financial statements for one
  stock. With -png the price chart is also written to <file>.
`
}

func (c *detailCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol (e.g. AAPL)")
	f.StringVar(&c.png, "png", "", "write the price chart PNG to this file")
}

func (c *detailCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol := c.symbol
	if symbol == "" && f.NArg() > 0 {
		symbol = f.Arg(0)
	}
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	detail, err := a.StockService.GetDetail(ctx, sym)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(format.DetailMarkdown(detail))

	if c.png != "" {
		img, err := a.StockService.RenderPriceChart(detail.Chart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.png, img, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.png)
	}

	return subcommands.ExitSuccess
}

type indexesCmd struct{}

func (*indexesCmd) Name() string             { return "indexes" }
func (*indexesCmd) Synopsis() string         { return "list supported indexes, filters and sort keys" }
func (*indexesCmd) Usage() string            { return "stocklens indexes\n" }
func (*indexesCmd) SetFlags(_ *flag.FlagSet) {}

func (*indexesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println(catalogText())
	return subcommands.ExitSuccess
}

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the REST and MCP server" }
func (*serveCmd) Usage() string {
	return `stocklens serve [-port n]

  Serves the REST API under /api and MCP tools under /mcp until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "listen port (overrides config)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port > 0 {
		a.Config.Server.Port = c.port
	}

	common.PrintBanner(a.Config, a.Logger)
	srv := server.NewServer(a)

	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		a.Logger.Error().Err(err).Msg("HTTP server failed")
		return subcommands.ExitFailure
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	common.PrintShutdownBanner(a.Logger)
	return subcommands.ExitSuccess
}

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print version information" }
func (*versionCmd) Usage() string            { return "stocklens version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	common.LoadVersionFromFile()
	fmt.Println(common.GetFullVersion())
	return subcommands.ExitSuccess
}
