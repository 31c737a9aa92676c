package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/careline/medtriage/pkg/domain"
)

// Provider owns the one-time load/train of the classifier model.
// Loading is CPU-bound, so it runs on its own goroutine; callers
// awaiting the model suspend on the ready channel rather than polling.
// After ready closes the model is process-wide immutable state.
type Provider struct {
	ready chan struct{}
	model *Model
	err   error
}

// NewProvider starts loading the artifact in the background. If the
// artifact is missing or corrupt, it self-repairs by training from the
// corpus and persisting the result for reuse. If that also fails, the
// error surfaces as a fatal domain.ErrModelUnavailable from Model().
func NewProvider(artifactPath, corpusPath string, logger *slog.Logger) *Provider {
	p := &Provider{ready: make(chan struct{})}

	go func() {
		defer close(p.ready)
		p.model, p.err = load(artifactPath, corpusPath, logger)
	}()

	return p
}

// NewStaticProvider wraps an already-built model; used by tests and by
// the train command.
func NewStaticProvider(m *Model) *Provider {
	p := &Provider{ready: make(chan struct{}), model: m}
	close(p.ready)
	return p
}

// Model returns the loaded model, blocking until loading completes or
// the context is canceled.
func (p *Provider) Model(ctx context.Context) (*Model, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ready:
		return p.model, p.err
	}
}

func load(artifactPath, corpusPath string, logger *slog.Logger) (*Model, error) {
	if artifactPath != "" {
		model, err := LoadModel(artifactPath)
		if err == nil {
			logger.Debug("intent model loaded", "artifact", artifactPath)
			return model, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			// Corrupt artifact: repair by retraining below.
			logger.Warn("intent artifact unusable, retraining", "artifact", artifactPath, "err", err)
		}
	}

	corpus, err := LoadCorpus(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	model, err := Train(corpus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	logger.Info("intent model trained", "tags", len(model.Tags), "patterns", model.TotalDocs)

	if artifactPath != "" {
		if err := model.Save(artifactPath); err != nil {
			// Persisting is an optimization for the next start, not a
			// requirement for serving this process.
			logger.Warn("could not persist intent artifact", "artifact", artifactPath, "err", err)
		}
	}
	return model, nil
}
