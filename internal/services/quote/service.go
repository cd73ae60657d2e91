// Package quote provides a caching quote service over the market data client
package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
)

// Compile-time interface check
var _ interfaces.QuoteService = (*Service)(nil)

type cachedQuote struct {
	quote     *models.Quote
	fetchedAt time.Time
}

type cachedHistory struct {
	history   *models.History
	fetchedAt time.Time
}

// Service implements QuoteService. Fetched quotes and history series are
// reused within the freshness window to bound call volume against the
// market data source; staleness inside the window is accepted, not a
// correctness violation.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	ttl    time.Duration
	now    func() time.Time // injectable clock for testing

	mu        sync.Mutex
	quotes    map[string]cachedQuote
	histories map[string]cachedHistory
}

// NewService creates a new quote service with the given freshness window.
// A non-positive ttl falls back to the default quote freshness.
func NewService(client interfaces.MarketDataClient, ttl time.Duration, logger *common.Logger) *Service {
	if ttl <= 0 {
		ttl = common.FreshnessQuote
	}
	return &Service{
		client:    client,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
		quotes:    make(map[string]cachedQuote),
		histories: make(map[string]cachedHistory),
	}
}

// GetQuote returns a quote for the symbol, served from cache when fresh.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("quote: %w", models.ErrInvalidInput)
	}

	s.mu.Lock()
	entry, ok := s.quotes[symbol]
	s.mu.Unlock()
	if ok && s.isFresh(entry.fetchedAt) {
		return entry.quote, nil
	}

	quote, err := s.client.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.quotes[symbol] = cachedQuote{quote: quote, fetchedAt: s.now()}
	s.mu.Unlock()

	s.logger.Debug().Str("symbol", symbol).Float64("price", quote.Price).Msg("Quote fetched")
	return quote, nil
}

// GetHistory returns OHLCV history for the symbol, served from cache when a
// fresh series exists for the same period and interval.
func (s *Service) GetHistory(ctx context.Context, symbol, period, interval string) (*models.History, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("history: %w", models.ErrInvalidInput)
	}

	key := fmt.Sprintf("%s|%s|%s", symbol, period, interval)

	s.mu.Lock()
	entry, ok := s.histories[key]
	s.mu.Unlock()
	if ok && s.isFresh(entry.fetchedAt) {
		return entry.history, nil
	}

	var opts []interfaces.HistoryOption
	if period != "" {
		opts = append(opts, interfaces.WithPeriod(period))
	}
	if interval != "" {
		opts = append(opts, interfaces.WithInterval(interval))
	}

	history, err := s.client.GetHistory(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.histories[key] = cachedHistory{history: history, fetchedAt: s.now()}
	s.mu.Unlock()

	s.logger.Debug().Str("symbol", symbol).Int("candles", len(history.Candles)).Msg("History fetched")
	return history, nil
}

func (s *Service) isFresh(fetchedAt time.Time) bool {
	return common.IsFreshAt(fetchedAt, s.ttl, s.now())
}
