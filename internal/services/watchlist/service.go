// Package watchlist manages the ordered watchlist on an account
package watchlist

import (
	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
)

// Compile-time interface check
var _ interfaces.WatchlistService = (*Service)(nil)

// Service implements WatchlistService. The watchlist is an ordered set:
// each symbol appears at most once, insertion order is preserved, and
// removal closes the gap.
type Service struct {
	logger *common.Logger
}

// NewService creates a new watchlist service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Add appends a symbol to the watchlist. Returns false without modifying
// anything when the symbol is already present or empty after normalization.
func (s *Service) Add(acct *models.Account, symbol string) bool {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return false
	}
	for _, existing := range acct.Watchlist {
		if existing == symbol {
			return false
		}
	}
	acct.Watchlist = append(acct.Watchlist, symbol)
	s.logger.Info().Str("user", acct.Username).Str("symbol", symbol).Msg("Watchlist symbol added")
	return true
}

// Remove deletes a symbol from the watchlist. Returns false when absent.
func (s *Service) Remove(acct *models.Account, symbol string) bool {
	symbol = models.NormalizeSymbol(symbol)
	for i, existing := range acct.Watchlist {
		if existing == symbol {
			acct.Watchlist = append(acct.Watchlist[:i], acct.Watchlist[i+1:]...)
			s.logger.Info().Str("user", acct.Username).Str("symbol", symbol).Msg("Watchlist symbol removed")
			return true
		}
	}
	return false
}

// List returns the watchlist in insertion order. The returned slice is a
// copy; callers cannot mutate the account through it.
func (s *Service) List(acct *models.Account) []string {
	out := make([]string, len(acct.Watchlist))
	copy(out, acct.Watchlist)
	return out
}
