package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/pkg/domain"
)

type stubEngine struct {
	startPrompt *domain.Prompt
	startErr    error
	step        *domain.Step
	answerErr   error
	result      *domain.Classification
	classifyErr error

	gotSession string
	gotOption  int
	gotMessage string
}

func (s *stubEngine) StartSession(ctx context.Context) (*domain.Prompt, error) {
	return s.startPrompt, s.startErr
}

func (s *stubEngine) Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.Step, error) {
	s.gotSession = sessionID
	s.gotOption = optionIndex
	return s.step, s.answerErr
}

func (s *stubEngine) Classify(ctx context.Context, text string, history []domain.Turn) (*domain.Classification, error) {
	s.gotMessage = text
	return s.result, s.classifyErr
}

func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestStart(t *testing.T) {
	engine := &stubEngine{startPrompt: &domain.Prompt{
		SessionID: "abc123",
		NodeID:    "start",
		Question:  "What is your main symptom?",
		Options:   []string{"Fever", "Headache"},
		Category:  "general",
	}}
	handler := NewHandler(engine, nil)

	rec := post(t, handler, "/v1/symptom-checker/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var prompt domain.Prompt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prompt))
	assert.Equal(t, "abc123", prompt.SessionID)
	assert.Equal(t, []string{"Fever", "Headache"}, prompt.Options)
}

func TestAnswer(t *testing.T) {
	engine := &stubEngine{step: &domain.Step{
		Final: true,
		Result: &domain.Result{
			Urgency:        domain.UrgencyLow,
			Recommendation: "Rest and hydrate.",
		},
	}}
	handler := NewHandler(engine, nil)

	rec := post(t, handler, "/v1/symptom-checker/answer", `{"session_id":"abc123","option_index":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", engine.gotSession)
	assert.Equal(t, 1, engine.gotOption)

	var step domain.Step
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &step))
	assert.True(t, step.Final)
	require.NotNil(t, step.Result)
	assert.Equal(t, domain.UrgencyLow, step.Result.Urgency)
}

func TestAnswer_MissingSession(t *testing.T) {
	handler := NewHandler(&stubEngine{}, nil)

	rec := post(t, handler, "/v1/symptom-checker/answer", `{"option_index":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswer_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown session", domain.ErrSessionNotFound, http.StatusNotFound},
		{"invalid option", domain.ErrInvalidOption, http.StatusBadRequest},
		{"model unavailable", domain.ErrModelUnavailable, http.StatusServiceUnavailable},
		{"assert.AnError", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(&stubEngine{answerErr: tc.err}, nil)
			rec := post(t, handler, "/v1/symptom-checker/answer", `{"session_id":"x","option_index":0}`)
			assert.Equal(t, tc.want, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestChat(t *testing.T) {
	engine := &stubEngine{result: &domain.Classification{
		Response:   "Hello! How can I help you today?",
		Intent:     "greeting",
		Confidence: 0.91,
	}}
	handler := NewHandler(engine, nil)

	rec := post(t, handler, "/v1/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", engine.gotMessage)

	var out domain.Classification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "greeting", out.Intent)
	assert.False(t, out.Emergency)
}

func TestChat_EmptyMessage(t *testing.T) {
	handler := NewHandler(&stubEngine{}, nil)

	rec := post(t, handler, "/v1/chat", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_BadJSON(t *testing.T) {
	handler := NewHandler(&stubEngine{}, nil)

	rec := post(t, handler, "/v1/chat", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	handler := NewHandler(&stubEngine{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
