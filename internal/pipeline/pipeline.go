// Package pipeline composes the triage stages: emergency scan first,
// then entity extraction and intent classification for free text.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/careline/medtriage/internal/emergency"
	"github.com/careline/medtriage/internal/intent"
	"github.com/careline/medtriage/internal/lexicon"
	"github.com/careline/medtriage/internal/logging"
	"github.com/careline/medtriage/internal/metrics"
	"github.com/careline/medtriage/pkg/domain"
)

// IntentEmergency is the synthetic tag for emergency short-circuits.
const IntentEmergency = "emergency"

// IntentSymptomQuery is the distinguished tag whose responses get the
// detected-terms suffix appended.
const IntentSymptomQuery = "symptom_query"

// Pipeline is a pure function of (text, optional context) plus the
// process-wide immutable models. Safe for concurrent use.
type Pipeline struct {
	matcher   *lexicon.Matcher
	provider  *intent.Provider
	responder *intent.Responder
	logger    *slog.Logger
	stats     *metrics.Metrics
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.stats = m
	}
}

// WithResponderSeed seeds template selection; tests use this for
// reproducible responses.
func WithResponderSeed(seed int64) Option {
	return func(p *Pipeline) {
		p.responder = intent.NewResponder(seed)
	}
}

// New creates a pipeline over the given matcher and model provider.
func New(matcher *lexicon.Matcher, provider *intent.Provider, opts ...Option) *Pipeline {
	p := &Pipeline{
		matcher:   matcher,
		provider:  provider,
		responder: intent.NewResponder(time.Now().UnixNano()),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provider exposes the intent model provider so callers can await
// readiness without going through Process.
func (p *Pipeline) Provider() *intent.Provider {
	return p.provider
}

// Process triages one input. The emergency scanner has absolute
// priority: on a hit neither the matcher nor the classifier runs and
// the fixed escalation payload is returned verbatim. History is
// accepted as opaque context from the boundary; the core does not
// persist it.
func (p *Pipeline) Process(ctx context.Context, text string, history []domain.Turn) (*domain.Classification, error) {
	if hit, phrase := emergency.Scan(text); hit {
		p.stats.Emergency()
		p.logger.Info("emergency detected", "phrase", phrase)

		lowered := strings.ToLower(text)
		idx := strings.Index(lowered, phrase)
		start := utf8.RuneCountInString(lowered[:idx])
		return &domain.Classification{
			Response:   emergency.Response,
			Intent:     IntentEmergency,
			Confidence: 1.0,
			Entities: []domain.Entity{{
				Text:  phrase,
				Label: domain.LabelEmergency,
				Start: start,
				End:   start + utf8.RuneCountInString(phrase),
			}},
			Emergency: true,
		}, nil
	}

	began := time.Now()

	entities, err := p.matcher.Extract(text)
	if err != nil {
		// Lexicon hits survive recognizer failures; degrade, don't fail.
		p.logger.Warn("entity recognizer failed", "err", err)
	}

	model, err := p.provider.Model(ctx)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	tag, confidence := model.Classify(text)
	response := p.responder.Response(model, tag)

	if tag == IntentSymptomQuery {
		if terms := symptomTerms(entities); len(terms) > 0 {
			response += "\n\n📋 **Detected symptoms/conditions**: " + strings.Join(terms, ", ")
		}
	}

	p.stats.Intent(tag)
	p.stats.ObserveClassify(time.Since(began).Seconds())
	p.logger.Debug("classified",
		"intent", tag,
		"confidence", confidence,
		"entities", len(entities),
		"context_turns", len(history),
	)

	return &domain.Classification{
		Response:   response,
		Intent:     tag,
		Confidence: confidence,
		Entities:   entities,
		Emergency:  false,
	}, nil
}

func symptomTerms(entities []domain.Entity) []string {
	var terms []string
	for _, e := range entities {
		if e.Label == domain.LabelSymptoms || e.Label == domain.LabelConditions {
			terms = append(terms, e.Text)
		}
	}
	return terms
}
