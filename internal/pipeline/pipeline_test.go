package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/internal/intent"
	"github.com/careline/medtriage/internal/lexicon"
	"github.com/careline/medtriage/internal/pipeline"
	"github.com/careline/medtriage/pkg/domain"
)

// trackingRecognizer fails the test if the pipeline invokes it on the
// emergency path.
type trackingRecognizer struct {
	calls int
}

func (r *trackingRecognizer) Recognize(text string) ([]domain.Entity, error) {
	r.calls++
	return nil, nil
}

func testModel(t *testing.T) *intent.Model {
	t.Helper()
	model, err := intent.Train(&intent.Corpus{Intents: []intent.Intent{
		{
			Tag:       "greeting",
			Patterns:  []string{"hello", "hi there", "good morning"},
			Responses: []string{"Hello! How can I help?"},
		},
		{
			Tag:       "symptom_query",
			Patterns:  []string{"i have a headache", "my chest hurts", "i feel sick", "i have symptoms"},
			Responses: []string{"I'm sorry you're not feeling well."},
		},
	}})
	require.NoError(t, err)
	return model
}

func newPipeline(t *testing.T, rec *trackingRecognizer) *pipeline.Pipeline {
	t.Helper()
	return pipeline.New(
		lexicon.New(rec),
		intent.NewStaticProvider(testModel(t)),
		pipeline.WithResponderSeed(1),
	)
}

func TestProcess_EmergencyShortCircuit(t *testing.T) {
	rec := &trackingRecognizer{}
	p := newPipeline(t, rec)

	res, err := p.Process(context.Background(), "I want to kill myself", nil)
	require.NoError(t, err)

	assert.True(t, res.Emergency)
	assert.Equal(t, "emergency", res.Intent)
	assert.Equal(t, 1.0, res.Confidence)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "kill myself", res.Entities[0].Text)
	assert.Equal(t, domain.LabelEmergency, res.Entities[0].Label)
	assert.Contains(t, res.Response, "EMERGENCY")

	// Neither the recognizer nor the classifier ran.
	assert.Zero(t, rec.calls)
}

func TestProcess_EmergencyEntityRuneOffsets(t *testing.T) {
	p := newPipeline(t, &trackingRecognizer{})

	// "Señor, I want to " is 17 runes but 18 bytes before the phrase.
	res, err := p.Process(context.Background(), "Señor, I want to kill myself", nil)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "kill myself", res.Entities[0].Text)
	assert.Equal(t, 17, res.Entities[0].Start)
	assert.Equal(t, 28, res.Entities[0].End)
}

func TestProcess_SymptomQueryAppendsTerms(t *testing.T) {
	p := newPipeline(t, &trackingRecognizer{})

	res, err := p.Process(context.Background(), "i have a headache", nil)
	require.NoError(t, err)

	assert.False(t, res.Emergency)
	assert.Equal(t, "symptom_query", res.Intent)
	assert.Contains(t, res.Response, "Detected symptoms/conditions")
	assert.Contains(t, res.Response, "headache")

	var found bool
	for _, e := range res.Entities {
		if e.Text == "headache" && e.Label == domain.LabelSymptoms {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProcess_GreetingNoSuffix(t *testing.T) {
	p := newPipeline(t, &trackingRecognizer{})

	res, err := p.Process(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, "greeting", res.Intent)
	assert.NotContains(t, res.Response, "Detected symptoms")
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}

func TestProcess_Deterministic(t *testing.T) {
	p := newPipeline(t, &trackingRecognizer{})
	ctx := context.Background()

	a, err := p.Process(ctx, "good morning", nil)
	require.NoError(t, err)
	b, err := p.Process(ctx, "good morning", nil)
	require.NoError(t, err)

	assert.Equal(t, a.Intent, b.Intent)
	assert.Equal(t, a.Confidence, b.Confidence)
}

func TestProcess_ContextAccepted(t *testing.T) {
	p := newPipeline(t, &trackingRecognizer{})

	history := []domain.Turn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hello! How can I help?"},
	}
	res, err := p.Process(context.Background(), "hi there", history)
	require.NoError(t, err)
	assert.False(t, res.Emergency)
}
