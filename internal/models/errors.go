package models

import "errors"

// Sentinel errors shared across services. All are recoverable: the caller
// reports them and the account is left unchanged.
var (
	// ErrInvalidInput covers empty symbols and non-positive quantities.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSymbolUnavailable is returned when the market data source has no
	// data for a symbol, or the fetch failed.
	ErrSymbolUnavailable = errors.New("symbol unavailable")
)
