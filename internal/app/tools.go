package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the stocklens server version and status. Use this to verify connectivity."),
	)
}

// createIndexHeatmapTool returns the index_heatmap tool definition
func createIndexHeatmapTool() mcp.Tool {
	return mcp.NewTool("index_heatmap",
		mcp.WithDescription("Show how far each member of a stock index trades below its 52-week high. Returns a table of price, daily change, distance from the high, market cap and performance band."),
		mcp.WithString("index",
			mcp.Required(),
			mcp.Description("Index id: 'nasdaq100' or 'sp500'"),
		),
		mcp.WithString("filter",
			mcp.Description("Performance band: all, near-high, small-decline, moderate-decline, large-decline, severe-decline, very-severe-decline, extremely-severe-decline, extremely-low (default: all)"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort key: none, changePercent, dailyChange, marketCap, symbol, currentPrice (default: none)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum rows to return (default: all)"),
		),
	)
}

// createStockDetailTool returns the stock_detail tool definition
func createStockDetailTool() mcp.Tool {
	return mcp.NewTool("stock_detail",
		mcp.WithDescription("Get price history summary and fundamentals (income statement, balance sheet, cash flow, key ratios) for one ticker."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g., 'AAPL', 'BRK-B')"),
		),
		mcp.WithBoolean("include_chart",
			mcp.Description("Attach a PNG price chart (default: true)"),
		),
	)
}
