package ports

import (
	"context"

	"github.com/careline/medtriage/pkg/domain"
)

// SessionStore persists in-progress symptom-checker sessions.
// Implementations must be safe for concurrent use; eviction running
// concurrently with lookups must leave a deleted session observable
// only as domain.ErrSessionNotFound.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves a session. Returns domain.ErrSessionNotFound if
	// the session does not exist or was evicted.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
