// Package checker is the stateful decision-tree session engine. It asks
// sequential questions, accumulates per-condition evidence scores, and
// produces a ranked differential when a walk terminates.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/careline/medtriage/internal/logging"
	"github.com/careline/medtriage/internal/metrics"
	"github.com/careline/medtriage/pkg/domain"
	"github.com/careline/medtriage/pkg/ports"
)

// Engine walks sessions through an immutable, pre-validated tree. It
// performs no internal locking; at-most-one-in-flight-per-session is
// the caller's responsibility (see pkg/session).
type Engine struct {
	tree   *domain.Tree
	store  ports.SessionStore
	policy ResultPolicy
	newID  func() string
	logger *slog.Logger
	stats  *metrics.Metrics
}

// Option configures the Engine.
type Option func(*Engine)

// WithResultPolicy overrides the ranking/urgency constants.
func WithResultPolicy(p ResultPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithIDGenerator injects the session ID source; tests use this for
// deterministic IDs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.stats = m
	}
}

// New creates a session engine over a validated tree.
func New(tree *domain.Tree, store ports.SessionStore, opts ...Option) (*Engine, error) {
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		tree:   tree,
		store:  store,
		policy: DefaultResultPolicy(),
		newID:  shortID,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tree returns the engine's tree definition.
func (e *Engine) Tree() *domain.Tree {
	return e.tree
}

// Start creates a session at the tree root and returns its prompt.
func (e *Engine) Start(ctx context.Context) (*domain.Prompt, error) {
	id := e.newID()
	session := domain.NewSession(id, e.tree.Root)
	if err := e.store.Save(ctx, id, session); err != nil {
		return nil, fmt.Errorf("persist new session: %w", err)
	}

	e.stats.SessionStarted()
	e.logger.Debug("session started", "session_id", id)
	return e.prompt(session), nil
}

// Answer applies one answer to a session. The option index is validated
// before any mutation, so session state is unchanged on ErrInvalidOption.
// Reaching a terminal option destroys the session and returns the final
// result; answering a destroyed session yields ErrSessionNotFound.
func (e *Engine) Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.Step, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	node := e.tree.Nodes[session.CurrentNodeID]
	if optionIndex < 0 || optionIndex >= len(node.Options) {
		return nil, fmt.Errorf("%w: %d not in [0,%d) at node %q",
			domain.ErrInvalidOption, optionIndex, len(node.Options), node.ID)
	}

	selected := node.Options[optionIndex]
	session.AddScores(selected.Scores)
	session.History = append(session.History, domain.AnswerRecord{
		Question: node.Question,
		Answer:   selected.Text,
		NodeID:   node.ID,
	})
	session.Touch()

	if selected.Next == "" || e.tree.Nodes[selected.Next].Final {
		result := buildResult(e.tree, session, e.policy)
		if err := e.store.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("evict completed session: %w", err)
		}

		e.stats.SessionCompleted(string(result.Urgency))
		e.logger.Debug("session completed",
			"session_id", sessionID,
			"urgency", result.Urgency,
			"answers", len(session.History),
		)
		return &domain.Step{Final: true, Result: result}, nil
	}

	session.CurrentNodeID = selected.Next
	if err := e.store.Save(ctx, sessionID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &domain.Step{Prompt: e.prompt(session)}, nil
}

func (e *Engine) prompt(session *domain.Session) *domain.Prompt {
	node := e.tree.Nodes[session.CurrentNodeID]
	options := make([]string, len(node.Options))
	for i, opt := range node.Options {
		options[i] = opt.Text
	}
	category := node.Category
	if category == "" {
		category = "general"
	}
	return &domain.Prompt{
		SessionID: session.ID,
		NodeID:    node.ID,
		Question:  node.Question,
		Options:   options,
		Category:  category,
	}
}

// shortID yields the 32-hex form of a v4 UUID, truncated to 16 chars.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
