package server

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/stocklens/internal/models"
	"github.com/bobmcallan/stocklens/internal/services/heatmap"
)

// handleIndexHeatmap handles GET /api/indexes/{id}/heatmap?filter=&sort=
func (s *Server) handleIndexHeatmap(w http.ResponseWriter, r *http.Request, indexID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	filter := q.Get("filter")
	if filter == "" {
		filter = s.app.Config.Heatmap.DefaultFilter
	}
	sortKey := q.Get("sort")
	if sortKey == "" {
		sortKey = s.app.Config.Heatmap.DefaultSort
	}

	opts, err := heatmap.ParseViewOptions(filter, sortKey)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	limit := 0
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			WriteErrorWithCode(w, http.StatusBadRequest, "limit must be a non-negative integer", "invalid_argument")
			return
		}
	}

	view, err := s.app.HeatmapService.IndexHeatmap(r.Context(), indexID, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if limit > 0 && limit < len(view.Rows) {
		view.Rows = view.Rows[:limit]
	}

	WriteJSON(w, http.StatusOK, view)
}

// handleStockDetail handles GET /api/stocks/{symbol}
func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	detail, err := s.app.StockService.GetDetail(r.Context(), sym)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, detail)
}

// handleStockChart handles GET /api/stocks/{symbol}/chart?range=&interval=
func (s *Server) handleStockChart(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	chart, ok := s.fetchChart(w, r, symbol)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, chart)
}

// handleStockChartPNG handles GET /api/stocks/{symbol}/chart.png?range=&interval=
func (s *Server) handleStockChartPNG(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	chart, ok := s.fetchChart(w, r, symbol)
	if !ok {
		return
	}

	png, err := s.app.StockService.RenderPriceChart(chart)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", chart.Symbol).Msg("Price chart render failed")
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "render_failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleStockFundamentals handles GET /api/stocks/{symbol}/fundamentals
func (s *Server) handleStockFundamentals(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	f, err := s.app.StockService.GetFundamentals(r.Context(), sym)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, f)
}

func (s *Server) fetchChart(w http.ResponseWriter, r *http.Request, symbol string) (*models.Chart, bool) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		WriteServiceError(w, err)
		return nil, false
	}

	q := r.URL.Query()
	chart, err := s.app.StockService.GetChart(r.Context(), sym, q.Get("range"), q.Get("interval"))
	if err != nil {
		WriteServiceError(w, err)
		return nil, false
	}
	return chart, true
}
