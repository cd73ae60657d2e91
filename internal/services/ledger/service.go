// Package ledger maintains cash and holdings under simulated buy and sell
// operations. It is the one piece of this codebase with invariants worth
// stating precisely: a position exists iff its quantity is positive, average
// cost is recomputed only on buys, and a failed operation leaves the account
// untouched.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
)

// Trade rejection errors. Handlers map these to stable HTTP error codes.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoPosition         = errors.New("no position held")
	ErrInsufficientShares = errors.New("insufficient shares held")
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService. It holds no account state of its own;
// every operation acts on the account the caller passes in.
type Service struct {
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new ledger service
func NewService(logger *common.Logger) *Service {
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// Buy debits cash and adds quantity to the position for symbol, opening one
// at the unit price if none exists. The unit price must be the quote price
// the caller fetched immediately before calling: the trade settles at that
// price, with no re-fetch between validation and execution.
func (s *Service) Buy(acct *models.Account, symbol string, quantity int64, unitPrice decimal.Decimal) (*models.Trade, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" || quantity < 1 {
		return nil, fmt.Errorf("buy %q x%d: %w", symbol, quantity, models.ErrInvalidInput)
	}

	cost := unitPrice.Mul(decimal.NewFromInt(quantity))
	if acct.Cash.LessThan(cost) {
		return nil, fmt.Errorf("cost %s exceeds cash %s: %w", cost, acct.Cash, ErrInsufficientFunds)
	}

	if pos, ok := acct.Holdings[symbol]; ok {
		newQty := pos.Quantity + quantity
		// Volume-weighted mean of the old position value and the new
		// purchase value, rounded to cents.
		oldValue := pos.AverageCost.Mul(decimal.NewFromInt(pos.Quantity))
		avg := oldValue.Add(cost).Div(decimal.NewFromInt(newQty)).Round(2)
		pos.Quantity = newQty
		pos.AverageCost = avg
	} else {
		acct.Holdings[symbol] = &models.Position{
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: unitPrice.Round(2),
		}
	}

	acct.Cash = acct.Cash.Sub(cost)

	trade := &models.Trade{
		ID:         uuid.New().String(),
		Side:       models.TradeSideBuy,
		Symbol:     symbol,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Total:      cost,
		ExecutedAt: s.now(),
	}

	s.logger.Info().
		Str("user", acct.Username).
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Str("unit_price", unitPrice.String()).
		Str("cost", cost.String()).
		Msg("Buy executed")

	return trade, nil
}

// Sell credits cash with quantity times unit price and reduces the position,
// removing it entirely at zero. Average cost of any remaining position is
// unchanged.
func (s *Service) Sell(acct *models.Account, symbol string, quantity int64, unitPrice decimal.Decimal) (*models.Trade, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" || quantity < 1 {
		return nil, fmt.Errorf("sell %q x%d: %w", symbol, quantity, models.ErrInvalidInput)
	}

	pos, ok := acct.Holdings[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoPosition)
	}
	if quantity > pos.Quantity {
		return nil, fmt.Errorf("sell %d of %d held: %w", quantity, pos.Quantity, ErrInsufficientShares)
	}

	proceeds := unitPrice.Mul(decimal.NewFromInt(quantity))

	pos.Quantity -= quantity
	if pos.Quantity == 0 {
		delete(acct.Holdings, symbol)
	}
	acct.Cash = acct.Cash.Add(proceeds)

	trade := &models.Trade{
		ID:         uuid.New().String(),
		Side:       models.TradeSideSell,
		Symbol:     symbol,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Total:      proceeds,
		ExecutedAt: s.now(),
	}

	s.logger.Info().
		Str("user", acct.Username).
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Str("unit_price", unitPrice.String()).
		Str("proceeds", proceeds.String()).
		Msg("Sell executed")

	return trade, nil
}

// NetWorth computes cash plus the market value of all holdings at the given
// prices. A symbol missing from the price map contributes zero: an
// unfetchable quote degrades the valuation silently rather than failing the
// whole computation.
func (s *Service) NetWorth(acct *models.Account, prices map[string]decimal.Decimal) decimal.Decimal {
	total := acct.Cash
	for symbol, pos := range acct.Holdings {
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(pos.Quantity)))
	}
	return total
}
