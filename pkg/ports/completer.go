package ports

import (
	"context"

	"github.com/careline/medtriage/pkg/domain"
)

// Completer is the hosted completion service used by the surrounding
// chat layer for open-ended replies. The core never calls it; the
// interface exists so the boundary can hand the orchestrator's
// structured result to a completion backend without the core depending
// on one.
type Completer interface {
	Complete(ctx context.Context, prompt string, history []domain.Turn) (string, error)
}
