package models

import (
	"sync"
	"time"
)

// Session ties an authenticated username to its Account. Each session owns
// its account exclusively; handlers serialize mutations through Lock so
// ledger operations stay atomic with respect to the caller.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
	Account   *Account  `json:"-"`

	mu sync.Mutex
}

// Lock acquires the session's account mutex.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's account mutex.
func (s *Session) Unlock() { s.mu.Unlock() }
