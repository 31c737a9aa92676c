// Package memory implements ports.SessionStore in process memory with
// an optional idle-timeout sweep for abandoned sessions.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/careline/medtriage/pkg/domain"
)

// Store keeps sessions in a map. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.Session

	idleTimeout time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithIdleTimeout enables eviction of sessions that have seen no
// activity for the given duration. Zero disables eviction.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.idleTimeout = d
	}
}

// NewStore creates an in-memory session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]*domain.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists a deep copy of the session. The session's own
// LastActivity is trusted as-is; the engine stamps it per answer and
// Sweep reads it for idle eviction.
func (s *Store) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	cp := clone(session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = cp
	return nil
}

// Load retrieves a copy of the session so callers cannot mutate store
// state through the returned pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return clone(session), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the IDs of live sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// Sweep evicts sessions idle longer than the configured timeout and
// returns the number removed. A no-op when eviction is disabled.
func (s *Store) Sweep(now time.Time) int {
	if s.idleTimeout <= 0 {
		return 0
	}

	cutoff := now.Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.data {
		if session.LastActivity.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a ticker until the context is canceled.
// Eviction is decoupled from the answer path; a lookup immediately
// after eviction observes ErrSessionNotFound.
func (s *Store) StartSweeper(ctx context.Context, every time.Duration) {
	if s.idleTimeout <= 0 || every <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}

func clone(src *domain.Session) *domain.Session {
	cp := *src
	cp.Scores = make(map[string]float64, len(src.Scores))
	for k, v := range src.Scores {
		cp.Scores[k] = v
	}
	cp.ScoreOrder = append([]string(nil), src.ScoreOrder...)
	cp.History = append([]domain.AnswerRecord(nil), src.History...)
	return &cp
}
