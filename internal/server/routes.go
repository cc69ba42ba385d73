package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/stocklens/internal/common"
	"github.com/bobmcallan/stocklens/internal/models"
)

const (
	indexesPrefix = "/api/indexes/"
	stocksPrefix  = "/api/stocks/"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Indexes
	mux.HandleFunc(indexesPrefix, s.routeIndexes)
	mux.HandleFunc("/api/indexes", s.handleIndexList)

	// Stocks
	mux.HandleFunc(stocksPrefix, s.routeStocks)
}

// routeIndexes dispatches /api/indexes/{id}/* to the appropriate handler.
func (s *Server) routeIndexes(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, indexesPrefix, "")
	if id == "" {
		s.handleIndexList(w, r)
		return
	}

	if subpath(r, indexesPrefix, id) == "heatmap" {
		s.handleIndexHeatmap(w, r, id)
		return
	}

	WriteError(w, http.StatusNotFound, "Not found")
}

// routeStocks dispatches /api/stocks/{symbol}/* to the appropriate handler.
func (s *Server) routeStocks(w http.ResponseWriter, r *http.Request) {
	symbol := PathParam(r, stocksPrefix, "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	switch subpath(r, stocksPrefix, symbol) {
	case "":
		s.handleStockDetail(w, r, symbol)
	case "chart":
		s.handleStockChart(w, r, symbol)
	case "chart.png":
		s.handleStockChartPNG(w, r, symbol)
	case "fundamentals":
		s.handleStockFundamentals(w, r, symbol)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// subpath returns what follows prefix+param, without the leading slash.
func subpath(r *http.Request, prefix, param string) string {
	return strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix+param), "/")
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// IndexCatalog lists what the heatmap endpoint accepts.
type IndexCatalog struct {
	Indexes []models.Index      `json:"indexes"`
	Filters []models.BucketInfo `json:"filters"`
	Sorts   []models.SortKey    `json:"sorts"`
}

func (s *Server) handleIndexList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	filters := append([]models.BucketInfo{models.BucketAll.Info()}, models.Buckets...)
	WriteJSON(w, http.StatusOK, IndexCatalog{
		Indexes: models.Indexes,
		Filters: filters,
		Sorts:   models.SortKeys,
	})
}
