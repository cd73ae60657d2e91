// Package models defines data structures for papertrade
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the simulated trading state owned by a single session:
// cash balance, open positions, and the watchlist. It is created at login,
// mutated only by ledger and watchlist operations, and discarded when the
// session ends. Nothing here outlives the process.
type Account struct {
	Username  string               `json:"username"`
	Cash      decimal.Decimal      `json:"cash"`
	Holdings  map[string]*Position `json:"holdings"`
	Watchlist []string             `json:"watchlist"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewAccount creates an account with the given starting cash and empty
// holdings and watchlist.
func NewAccount(username string, startingCash decimal.Decimal) *Account {
	return &Account{
		Username:  username,
		Cash:      startingCash,
		Holdings:  make(map[string]*Position),
		Watchlist: []string{},
		CreatedAt: time.Now(),
	}
}

// Position is a held quantity of one symbol plus its average cost basis.
// A position exists iff its quantity is greater than zero; selling down to
// zero deletes the entry rather than keeping it around.
type Position struct {
	Symbol      string          `json:"symbol"`
	Quantity    int64           `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// TradeSide identifies the direction of an executed trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is the record of an executed buy or sell. Total is quantity times
// unit price: the cost for a buy, the proceeds for a sell.
type Trade struct {
	ID         string          `json:"id"`
	Side       TradeSide       `json:"side"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// NormalizeSymbol canonicalizes a user-supplied ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
