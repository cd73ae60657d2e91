// Package interfaces defines service contracts for papertrade
package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harmonk/papertrade/internal/models"
)

// LedgerService maintains cash and holdings under buy/sell operations and
// computes valuations. Operations are atomic with respect to the caller:
// either the full precondition passes and the full effect applies, or the
// account is unchanged.
type LedgerService interface {
	// Buy debits cash and adds to (or opens) a position at the given unit
	// price. The price must be the quote-derived current price fetched by
	// the caller immediately before the call.
	Buy(acct *models.Account, symbol string, quantity int64, unitPrice decimal.Decimal) (*models.Trade, error)

	// Sell credits cash and reduces a position, removing it at zero.
	Sell(acct *models.Account, symbol string, quantity int64, unitPrice decimal.Decimal) (*models.Trade, error)

	// NetWorth computes cash plus the market value of all holdings at the
	// given prices. Symbols absent from the map contribute zero.
	NetWorth(acct *models.Account, prices map[string]decimal.Decimal) decimal.Decimal
}

// WatchlistService manages the ordered, duplicate-free watchlist on an
// account.
type WatchlistService interface {
	// Add appends a symbol; returns false (no-op) if already present.
	Add(acct *models.Account, symbol string) bool

	// Remove deletes a symbol; returns false if absent.
	Remove(acct *models.Account, symbol string) bool

	// List returns the watchlist in insertion order.
	List(acct *models.Account) []string
}

// QuoteService serves quotes and history with bounded-freshness caching in
// front of the market data client.
type QuoteService interface {
	// GetQuote returns a quote no older than the configured freshness
	// window, fetching from the market data source when the cache misses.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory returns cached-or-fetched OHLCV history.
	GetHistory(ctx context.Context, symbol, period, interval string) (*models.History, error)
}
