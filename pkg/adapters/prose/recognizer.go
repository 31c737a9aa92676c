// Package prose adapts the prose NLP library to the ports.Recognizer
// interface. It provides the generic named-entity pass (people, places,
// organizations) that runs alongside the medical lexicon.
package prose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	engine "github.com/jdkato/prose/v2"

	"github.com/careline/medtriage/pkg/domain"
)

// Recognizer implements ports.Recognizer using prose's statistical NER.
type Recognizer struct {
	opts []engine.DocOpt
}

// New creates a recognizer backed by prose's built-in English model.
func New() *Recognizer {
	return &Recognizer{
		opts: []engine.DocOpt{engine.WithSegmentation(false)},
	}
}

// NewFromDisk creates a recognizer using a model directory previously
// produced by prose. Returns an error if the resource is unreadable;
// callers treat that as fatal at initialization.
func NewFromDisk(path string) (*Recognizer, error) {
	model := engine.ModelFromDisk(path)
	if model == nil {
		return nil, fmt.Errorf("load recognizer model from %s: %w", path, domain.ErrModelUnavailable)
	}
	return &Recognizer{
		opts: []engine.DocOpt{engine.WithSegmentation(false), engine.UsingModel(model)},
	}, nil
}

// Recognize extracts generic named entities with their native labels.
// Offsets are rune positions of the span's first occurrence in the
// input text.
func (r *Recognizer) Recognize(text string) ([]domain.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := engine.NewDocument(text, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("recognizer: %w", err)
	}

	var entities []domain.Entity
	for _, ent := range doc.Entities() {
		idx := strings.Index(text, ent.Text)
		if idx < 0 {
			idx = 0
		}
		start := utf8.RuneCountInString(text[:idx])
		entities = append(entities, domain.Entity{
			Text:  ent.Text,
			Label: ent.Label,
			Start: start,
			End:   start + utf8.RuneCountInString(ent.Text),
		})
	}
	return entities, nil
}
