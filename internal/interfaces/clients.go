// Package interfaces defines service contracts for papertrade
package interfaces

import (
	"context"

	"github.com/harmonk/papertrade/internal/models"
)

// MarketDataClient provides access to an external quote source. Both calls
// are idempotent reads with no side effects on account state; failures
// surface as models.ErrSymbolUnavailable.
type MarketDataClient interface {
	// GetQuote retrieves the latest price, previous close, and display
	// name for a symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory retrieves OHLCV history for a symbol, oldest candle first.
	GetHistory(ctx context.Context, symbol string, opts ...HistoryOption) (*models.History, error)
}

// HistoryOption configures history requests
type HistoryOption func(*HistoryParams)

// HistoryParams holds history query parameters
type HistoryParams struct {
	Period   string // e.g. "5d", "1mo", "3mo", "6mo", "1y"
	Interval string // e.g. "1m", "5m", "15m", "1h", "1d", "1wk"
}

// WithPeriod sets the lookback period for a history query
func WithPeriod(period string) HistoryOption {
	return func(p *HistoryParams) {
		p.Period = period
	}
}

// WithInterval sets the bar interval for a history query
func WithInterval(interval string) HistoryOption {
	return func(p *HistoryParams) {
		p.Interval = interval
	}
}
