package server

import (
	"net/http"

	"github.com/harmonk/papertrade/internal/services/chart"
)

// handleMarketQuote handles GET /api/market/quote/{symbol}.
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/quote/", "")
	if symbol == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required in path", CodeInvalidInput)
		return
	}

	quote, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// handleMarketHistory handles GET /api/market/history/{symbol}.
// Optional query params: period (default 1y), interval (default 1d).
func (s *Server) handleMarketHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/history/", "")
	if symbol == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required in path", CodeInvalidInput)
		return
	}

	period := r.URL.Query().Get("period")
	interval := r.URL.Query().Get("interval")

	history, err := s.app.QuoteService.GetHistory(r.Context(), symbol, period, interval)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, history)
}

// handleMarketChart handles GET /api/market/chart/{symbol} — a rendered PNG
// price chart. Same period/interval query params as history.
func (s *Server) handleMarketChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/chart/", "")
	if symbol == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required in path", CodeInvalidInput)
		return
	}

	period := r.URL.Query().Get("period")
	interval := r.URL.Query().Get("interval")

	history, err := s.app.QuoteService.GetHistory(r.Context(), symbol, period, interval)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	png, err := chart.RenderPriceChart(history)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
