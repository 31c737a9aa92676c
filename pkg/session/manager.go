// Package session provides per-session concurrency coordination for
// the boundary layer. The checker engine itself performs no locking and
// assumes at most one in-flight answer per session; the Manager is how
// callers uphold that.
package session

import (
	"context"
	"sync"
)

// lockEntry holds the mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes operations per session key. Lock entries are
// reference counted so the map does not grow with dead sessions.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewManager creates a session lock manager.
func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*lockEntry),
	}
}

func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn(ctx)
}
