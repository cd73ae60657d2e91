// Package common provides shared utilities for papertrade
package common

import "time"

// Freshness TTLs for cached market data
const (
	// FreshnessQuote is how long a fetched quote or history series is
	// reused before the market data source is asked again. Staleness
	// inside this window is accepted; trades settle at the price the
	// caller fetched, fresh or cached.
	FreshnessQuote = 5 * time.Minute
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	return IsFreshAt(updated, ttl, time.Now())
}

// IsFreshAt is IsFresh evaluated against an explicit clock, for callers that
// inject their own time source.
func IsFreshAt(updated time.Time, ttl time.Duration, now time.Time) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
