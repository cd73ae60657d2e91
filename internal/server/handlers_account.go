package server

import (
	"net/http"

	"github.com/shopspring/decimal"
)

// handleAccount handles GET /api/account — the current cash, holdings,
// watchlist, and net worth of the session's account.
//
// Net worth values holdings at current quotes. A symbol whose quote cannot
// be fetched contributes zero rather than failing the whole response; the
// degraded valuation is logged.
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		writeBearerChallenge(w, "authentication required")
		return
	}

	session.Lock()
	symbols := make([]string, 0, len(session.Account.Holdings))
	for symbol := range session.Account.Holdings {
		symbols = append(symbols, symbol)
	}
	session.Unlock()

	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Net worth: quote unavailable, valuing at zero")
			continue
		}
		prices[symbol] = decimal.NewFromFloat(quote.Price)
	}

	session.Lock()
	netWorth := s.app.LedgerService.NetWorth(session.Account, prices)
	response := map[string]interface{}{
		"account":   session.Account,
		"prices":    prices,
		"net_worth": netWorth,
	}
	session.Unlock()

	WriteJSON(w, http.StatusOK, response)
}
