// Package http exposes the triage engine as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/careline/medtriage/internal/logging"
	"github.com/careline/medtriage/pkg/domain"
)

// Engine defines the triage core as seen from the HTTP boundary.
type Engine interface {
	StartSession(ctx context.Context) (*domain.Prompt, error)
	Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.Step, error)
	Classify(ctx context.Context, text string, history []domain.Turn) (*domain.Classification, error)
}

// Server holds the handler dependencies.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the chi router for the engine. A nil registry
// disables the /metrics endpoint.
func NewHandler(engine Engine, registry *prometheus.Registry, opts ...Option) http.Handler {
	s := &Server{engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/symptom-checker/start", s.start)
		r.Post("/symptom-checker/answer", s.answer)
		r.Post("/chat", s.chat)
	})
	return r
}

type answerRequest struct {
	SessionID   string `json:"session_id"`
	OptionIndex int    `json:"option_index"`
}

type chatRequest struct {
	Message string        `json:"message"`
	History []domain.Turn `json:"history,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.engine.StartSession(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, prompt)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if body.SessionID == "" {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "session_id is required"})
		return
	}

	step, err := s.engine.Answer(r.Context(), body.SessionID, body.OptionIndex)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, step)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if body.Message == "" {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	result, err := s.engine.Classify(r.Context(), body.Message, body.History)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, result)
}

// fail maps domain errors onto HTTP status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidOption):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.respond(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
