package ports

import "github.com/careline/medtriage/pkg/domain"

// Recognizer is a generic statistical named-entity recognizer. Its
// model resource is loaded once and shared read-only by concurrent
// callers. Implementations must tolerate empty input.
type Recognizer interface {
	Recognize(text string) ([]domain.Entity, error)
}
