// Package memory provides the in-memory session store
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
)

// Compile-time interface check
var _ interfaces.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in a mutex-guarded map. State is per-process
// and discarded on restart; logging in again always starts a fresh account.
type SessionStore struct {
	startingCash decimal.Decimal
	logger       *common.Logger
	now          func() time.Time // injectable clock for testing

	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewSessionStore creates a session store whose new accounts begin with
// startingCash.
func NewSessionStore(startingCash decimal.Decimal, logger *common.Logger) *SessionStore {
	return &SessionStore{
		startingCash: startingCash,
		logger:       logger,
		now:          time.Now,
		sessions:     make(map[string]*models.Session),
	}
}

// Create opens a session for the username with a fresh account.
func (s *SessionStore) Create(_ context.Context, username string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("session: username is required: %w", models.ErrInvalidInput)
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: now,
		LastSeen:  now,
		Account:   models.NewAccount(username, s.startingCash),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info().Str("username", username).Str("session_id", session.ID).Msg("Session created")
	return session, nil
}

// Get returns the session with the given ID, updating its last-seen timestamp.
func (s *SessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}

	session.Lock()
	session.LastSeen = s.now()
	session.Unlock()

	return session, nil
}

// Delete discards a session and its account.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.logger.Info().Str("session_id", id).Msg("Session deleted")
	}
	return nil
}

// Count returns the number of live sessions.
func (s *SessionStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeIdle removes sessions idle for longer than maxIdle. Returns how many
// were removed.
func (s *SessionStore) PurgeIdle(_ context.Context, maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var removed int
	for id, session := range s.sessions {
		// LastSeen is written under the per-session mutex by Get, so it
		// must be read under the same mutex here.
		session.Lock()
		lastSeen := session.LastSeen
		session.Unlock()
		if lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Dur("max_idle", maxIdle).Msg("Idle sessions purged")
	}
	return removed
}
