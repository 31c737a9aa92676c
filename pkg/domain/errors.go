package domain

import "errors"

// ErrSessionNotFound is returned when a session ID is absent from the
// store, already terminated, or evicted. Maps to a not-found condition
// at the boundary; never retried.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidOption is returned when an answer index is outside the
// current node's option range. The session state is guaranteed to be
// unchanged when this error is returned.
var ErrInvalidOption = errors.New("invalid option index")

// ErrModelUnavailable is returned when the classifier or recognizer
// resource failed to load and could not be repaired by retraining.
var ErrModelUnavailable = errors.New("model unavailable")

// ErrInvalidTree is returned when a tree definition fails eager
// validation at load time.
var ErrInvalidTree = errors.New("invalid tree definition")
