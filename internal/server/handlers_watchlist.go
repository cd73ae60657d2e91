package server

import (
	"net/http"

	"github.com/harmonk/papertrade/internal/models"
)

// handleWatchlist handles GET and POST /api/watchlist.
func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		writeBearerChallenge(w, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		session.Lock()
		symbols := s.app.WatchlistService.List(session.Account)
		session.Unlock()

		// Attach current quotes where available; a symbol whose quote fails
		// still appears in the list, just without one.
		quotes := make(map[string]*models.Quote, len(symbols))
		for _, symbol := range symbols {
			quote, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Watchlist: quote unavailable")
				continue
			}
			quotes[symbol] = quote
		}

		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"watchlist": symbols,
			"quotes":    quotes,
		})

	case http.MethodPost:
		var req struct {
			Symbol string `json:"symbol"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if models.NormalizeSymbol(req.Symbol) == "" {
			WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required", CodeInvalidInput)
			return
		}

		session.Lock()
		added := s.app.WatchlistService.Add(session.Account, req.Symbol)
		symbols := s.app.WatchlistService.List(session.Account)
		session.Unlock()

		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"added":     added,
			"watchlist": symbols,
		})
	}
}

// handleWatchlistItem handles DELETE /api/watchlist/{symbol}.
func (s *Server) handleWatchlistItem(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		writeBearerChallenge(w, "authentication required")
		return
	}

	symbol := PathParam(r, "/api/watchlist/", "")
	if symbol == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required in path", CodeInvalidInput)
		return
	}

	session.Lock()
	removed := s.app.WatchlistService.Remove(session.Account, symbol)
	symbols := s.app.WatchlistService.List(session.Account)
	session.Unlock()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"removed":   removed,
		"watchlist": symbols,
	})
}
