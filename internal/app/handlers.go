package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/format"
	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
	"github.com/bobmcallan/stocklens/internal/services/heatmap"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("stocklens\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleIndexHeatmap implements the index_heatmap tool
func handleIndexHeatmap(svc interfaces.HeatmapService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := request.RequireString("index")
		if err != nil || index == "" {
			return errorResult("Error: index parameter is required"), nil
		}

		opts, err := heatmap.ParseViewOptions(request.GetString("filter", ""), request.GetString("sort", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		view, err := svc.IndexHeatmap(ctx, index, opts)
		if err != nil {
			logger.Error().Err(err).Str("index", index).Msg("Index heatmap failed")
			if errors.Is(err, models.ErrIndexUnavailable) {
				return errorResult(models.ErrIndexUnavailable.Error()), nil
			}
			return errorResult(fmt.Sprintf("Heatmap error: %v", err)), nil
		}

		if limit := request.GetInt("limit", 0); limit > 0 && limit < len(view.Rows) {
			view.Rows = view.Rows[:limit]
		}

		return textResult(format.HeatmapMarkdown(view)), nil
	}
}

// handleStockDetail implements the stock_detail tool
func handleStockDetail(svc interfaces.StockService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		detail, err := svc.GetDetail(ctx, symbol)
		if errors.Is(err, models.ErrNotFound) {
			logger.Info().Str("symbol", symbol).Msg("Unknown symbol")
			return errorResult(fmt.Sprintf("Symbol %s not found", strings.ToUpper(strings.TrimSpace(symbol)))), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("Stock detail failed")
			return errorResult(fmt.Sprintf("Detail error: %v", err)), nil
		}

		result := textResult(format.DetailMarkdown(detail))

		if request.GetBool("include_chart", true) {
			png, err := svc.RenderPriceChart(detail.Chart)
			if err != nil {
				logger.Warn().Err(err).Str("symbol", detail.Symbol).Msg("Price chart render failed")
			} else {
				result.Content = append(result.Content,
					mcp.NewImageContent(base64.StdEncoding.EncodeToString(png), "image/png"))
			}
		}

		return result, nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
