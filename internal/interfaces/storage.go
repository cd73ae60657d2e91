// Package interfaces defines service contracts for papertrade
package interfaces

import (
	"context"
	"time"

	"github.com/harmonk/papertrade/internal/models"
)

// SessionStore manages in-memory sessions and the accounts they own.
// Sessions do not survive a restart; there is deliberately no durable
// backend behind this interface.
type SessionStore interface {
	// Create opens a session for the username with a fresh account.
	Create(ctx context.Context, username string) (*models.Session, error)

	// Get returns the session with the given ID, updating its last-seen
	// timestamp.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Delete discards a session and its account.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) int

	// PurgeIdle removes sessions idle for longer than maxIdle and returns
	// how many were removed.
	PurgeIdle(ctx context.Context, maxIdle time.Duration) int
}
