package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/harmonk/papertrade/internal/models"
)

type tradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

// handleTradeBuy handles POST /api/trades/buy.
func (s *Server) handleTradeBuy(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, models.TradeSideBuy)
}

// handleTradeSell handles POST /api/trades/sell.
func (s *Server) handleTradeSell(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, models.TradeSideSell)
}

// handleTrade executes a buy or sell at the current quote. The price is
// fetched once, before the ledger operation; the trade either applies fully
// at that price or leaves the account unchanged.
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request, side models.TradeSide) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		writeBearerChallenge(w, "authentication required")
		return
	}

	var req tradeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	symbol := models.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "symbol is required", CodeInvalidInput)
		return
	}
	if req.Quantity < 1 {
		WriteErrorWithCode(w, http.StatusBadRequest, "quantity must be at least 1", CodeInvalidInput)
		return
	}

	quote, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	unitPrice := decimal.NewFromFloat(quote.Price)

	session.Lock()
	var trade *models.Trade
	if side == models.TradeSideBuy {
		trade, err = s.app.LedgerService.Buy(session.Account, symbol, req.Quantity, unitPrice)
	} else {
		trade, err = s.app.LedgerService.Sell(session.Account, symbol, req.Quantity, unitPrice)
	}
	session.Unlock()

	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trade":   trade,
		"account": session.Account,
	})
}
