package lexicon_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/internal/lexicon"
	"github.com/careline/medtriage/pkg/domain"
)

// stubRecognizer returns canned entities or an error.
type stubRecognizer struct {
	entities []domain.Entity
	err      error
	calls    int
}

func (s *stubRecognizer) Recognize(text string) ([]domain.Entity, error) {
	s.calls++
	return s.entities, s.err
}

func TestExtract_Empty(t *testing.T) {
	rec := &stubRecognizer{}
	m := lexicon.New(rec)

	entities, err := m.Extract("")
	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Zero(t, rec.calls, "recognizer should not run for empty input")

	entities, err = m.Extract("   \n")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestExtract_Symptoms(t *testing.T) {
	m := lexicon.New(nil)

	entities, err := m.Extract("I have a headache and chest pain")
	require.NoError(t, err)

	var texts []string
	for _, e := range entities {
		if e.Label == domain.LabelSymptoms {
			texts = append(texts, e.Text)
		}
	}
	assert.Contains(t, texts, "headache")
	assert.Contains(t, texts, "chest pain")
}

func TestExtract_FirstOccurrenceOffsets(t *testing.T) {
	m := lexicon.New(nil)

	text := "fever now, fever again"
	entities, err := m.Extract(text)
	require.NoError(t, err)

	var fevers []domain.Entity
	for _, e := range entities {
		if e.Text == "fever" {
			fevers = append(fevers, e)
		}
	}
	require.Len(t, fevers, 1, "repeated occurrences are reported once")
	assert.Equal(t, 0, fevers[0].Start)
	assert.Equal(t, len("fever"), fevers[0].End)
}

func TestExtract_RuneOffsets(t *testing.T) {
	m := lexicon.New(nil)

	// "señora with " is 12 runes but 13 bytes; offsets count runes.
	entities, err := m.Extract("señora with headache")
	require.NoError(t, err)

	var headaches []domain.Entity
	for _, e := range entities {
		if e.Text == "headache" {
			headaches = append(headaches, e)
		}
	}
	require.Len(t, headaches, 1)
	assert.Equal(t, 12, headaches[0].Start)
	assert.Equal(t, 20, headaches[0].End)
}

func TestExtract_RecognizerFirstAndDedupe(t *testing.T) {
	rec := &stubRecognizer{entities: []domain.Entity{
		{Text: "Fever", Label: domain.LabelSymptoms, Start: 0, End: 5},
		{Text: "London", Label: "GPE", Start: 15, End: 21},
	}}
	m := lexicon.New(rec)

	entities, err := m.Extract("Fever here in London")
	require.NoError(t, err)
	require.NotEmpty(t, entities)

	// Recognizer entities come first and win the dedupe against the
	// lexicon's lower-cased "fever" hit.
	assert.Equal(t, "Fever", entities[0].Text)

	count := 0
	for _, e := range entities {
		if e.Label == domain.LabelSymptoms {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_RecognizerFailureDegrades(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("model exploded")}
	m := lexicon.New(rec)

	entities, err := m.Extract("I have a cough")
	assert.Error(t, err)

	// Lexicon results are still usable.
	require.Len(t, entities, 1)
	assert.Equal(t, "cough", entities[0].Text)
}

func TestExtract_BodyPartsAndConditions(t *testing.T) {
	m := lexicon.New(nil)

	entities, err := m.Extract("my chest hurts, maybe asthma")
	require.NoError(t, err)

	labels := map[string]bool{}
	for _, e := range entities {
		labels[e.Label] = true
	}
	assert.True(t, labels[domain.LabelBodyParts])
	assert.True(t, labels[domain.LabelConditions])
}
