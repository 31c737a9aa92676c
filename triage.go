package medtriage

import (
	"context"
	"log/slog"

	"github.com/careline/medtriage/internal/checker"
	"github.com/careline/medtriage/internal/intent"
	"github.com/careline/medtriage/internal/lexicon"
	"github.com/careline/medtriage/internal/logging"
	"github.com/careline/medtriage/internal/metrics"
	"github.com/careline/medtriage/internal/pipeline"
	"github.com/careline/medtriage/pkg/adapters/memory"
	"github.com/careline/medtriage/pkg/adapters/prose"
	"github.com/careline/medtriage/pkg/domain"
	"github.com/careline/medtriage/pkg/ports"
	"github.com/careline/medtriage/pkg/session"
)

// Engine is the high-level entry point for the medtriage library. It
// wires the emergency scanner, the decision-tree session engine, and
// the free-text classification pipeline behind the three core
// operations.
type Engine struct {
	checker  *checker.Engine
	pipeline *pipeline.Pipeline
	sessions *session.Manager

	store      ports.SessionStore
	recognizer ports.Recognizer
	logger     *slog.Logger
	stats      *metrics.Metrics

	artifactPath  string
	responderSeed *int64
	policy        *checker.ResultPolicy
	idGen         func() string
}

// Option configures the Engine.
type Option func(*Engine)

// WithStore injects a session store; defaults to the in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithRecognizer injects the generic NER backend; defaults to the
// prose adapter.
func WithRecognizer(r ports.Recognizer) Option {
	return func(e *Engine) {
		e.recognizer = r
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

// WithArtifact sets the path where the trained intent model is
// persisted and reloaded.
func WithArtifact(path string) Option {
	return func(e *Engine) {
		e.artifactPath = path
	}
}

// WithResponderSeed makes template selection reproducible.
func WithResponderSeed(seed int64) Option {
	return func(e *Engine) {
		e.responderSeed = &seed
	}
}

// WithResultPolicy overrides the ranking/urgency constants.
func WithResultPolicy(p checker.ResultPolicy) Option {
	return func(e *Engine) {
		e.policy = &p
	}
}

// WithIDGenerator injects the session ID source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.idGen = fn
	}
}

// New builds an engine from a tree definition file and an intent
// corpus file. The tree is loaded and validated eagerly; malformed
// artifacts fail here, not per-request. Intent model loading/training
// starts in the background — call Ready to await it, or let the first
// Classify suspend until it completes.
func New(treePath, corpusPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.recognizer == nil {
		e.recognizer = prose.New()
	}

	tree, err := checker.LoadTree(treePath)
	if err != nil {
		return nil, err
	}

	checkerOpts := []checker.Option{
		checker.WithLogger(e.logger),
		checker.WithMetrics(e.stats),
	}
	if e.policy != nil {
		checkerOpts = append(checkerOpts, checker.WithResultPolicy(*e.policy))
	}
	if e.idGen != nil {
		checkerOpts = append(checkerOpts, checker.WithIDGenerator(e.idGen))
	}
	e.checker, err = checker.New(tree, e.store, checkerOpts...)
	if err != nil {
		return nil, err
	}

	provider := intent.NewProvider(e.artifactPath, corpusPath, e.logger)
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(e.logger),
		pipeline.WithMetrics(e.stats),
	}
	if e.responderSeed != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithResponderSeed(*e.responderSeed))
	}
	e.pipeline = pipeline.New(lexicon.New(e.recognizer), provider, pipelineOpts...)

	e.sessions = session.NewManager()
	return e, nil
}

// Ready blocks until the intent model is loaded or trained. Returns
// domain.ErrModelUnavailable (wrapped) if both loading and the repair
// training pass failed.
func (e *Engine) Ready(ctx context.Context) error {
	_, err := e.pipeline.Provider().Model(ctx)
	return err
}

// StartSession creates a symptom-checker session and returns the root
// question.
func (e *Engine) StartSession(ctx context.Context) (*domain.Prompt, error) {
	return e.checker.Start(ctx)
}

// Answer applies one answer to a session, serialized per session ID so
// concurrent calls against the same session cannot interleave.
func (e *Engine) Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.Step, error) {
	var step *domain.Step
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		step, err = e.checker.Answer(ctx, sessionID, optionIndex)
		return err
	})
	return step, err
}

// Classify triages free text: emergency scan first, then entity
// extraction and intent classification.
func (e *Engine) Classify(ctx context.Context, text string, history []domain.Turn) (*domain.Classification, error) {
	return e.pipeline.Process(ctx, text, history)
}

// Tree exposes the loaded tree definition for introspection.
func (e *Engine) Tree() *domain.Tree {
	return e.checker.Tree()
}
