package intent

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Model is a trained multinomial naive-Bayes classifier over
// unigram+bigram features, bundled with the tag → templates table so
// both stay version-consistent. Immutable after training/loading; safe
// for concurrent reads.
type Model struct {
	// Tags in training order. Prediction iterates this slice so ties
	// resolve deterministically.
	Tags []string `json:"tags"`

	// TagDocs counts training patterns per tag; TotalDocs is their sum.
	TagDocs   map[string]int `json:"tag_docs"`
	TotalDocs int            `json:"total_docs"`

	// FeatureCounts[tag][feature] is the summed occurrence count;
	// TagTotals[tag] is the total feature mass for the tag.
	FeatureCounts map[string]map[string]float64 `json:"feature_counts"`
	TagTotals     map[string]float64            `json:"tag_totals"`

	// Vocabulary holds every feature seen during training. Its size is
	// the Laplace smoothing denominator.
	Vocabulary map[string]bool `json:"vocabulary"`

	// Responses is the tag → templates table.
	Responses map[string][]string `json:"responses"`
}

// Train fits a model from the corpus. Deterministic: the same corpus
// always produces the same model.
func Train(corpus *Corpus) (*Model, error) {
	m := &Model{
		TagDocs:       make(map[string]int),
		FeatureCounts: make(map[string]map[string]float64),
		TagTotals:     make(map[string]float64),
		Vocabulary:    make(map[string]bool),
		Responses:     make(map[string][]string),
	}

	for _, it := range corpus.Intents {
		m.Tags = append(m.Tags, it.Tag)
		m.Responses[it.Tag] = it.Responses
		counts := make(map[string]float64)
		for _, pattern := range it.Patterns {
			m.TagDocs[it.Tag]++
			m.TotalDocs++
			for _, f := range features(pattern) {
				counts[f]++
				m.TagTotals[it.Tag]++
				m.Vocabulary[f] = true
			}
		}
		m.FeatureCounts[it.Tag] = counts
	}

	if m.TotalDocs == 0 {
		return nil, fmt.Errorf("training corpus contains no patterns")
	}
	return m, nil
}

// Classify predicts the intent tag for text together with the model's
// posterior probability for it, in [0,1]. Deterministic for identical
// input and model state.
func (m *Model) Classify(text string) (string, float64) {
	input := features(text)
	vocabSize := float64(len(m.Vocabulary))

	// Log-space joint score per tag, normalized below via log-sum-exp.
	logScores := make([]float64, len(m.Tags))
	for i, tag := range m.Tags {
		score := math.Log(float64(m.TagDocs[tag]) / float64(m.TotalDocs))
		counts := m.FeatureCounts[tag]
		denom := m.TagTotals[tag] + vocabSize
		for _, f := range input {
			if !m.Vocabulary[f] {
				continue
			}
			score += math.Log((counts[f] + 1) / denom)
		}
		logScores[i] = score
	}

	best := 0
	maxLog := math.Inf(-1)
	for i, s := range logScores {
		if s > maxLog {
			maxLog = s
			best = i
		}
	}

	var total float64
	for _, s := range logScores {
		total += math.Exp(s - maxLog)
	}
	confidence := 1.0
	if total > 0 {
		confidence = 1.0 / total
	}
	return m.Tags[best], confidence
}

// Save persists the model artifact as a single JSON unit.
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}

// LoadModel reads a previously saved artifact. Corrupt artifacts are an
// error; the provider handles repair by retraining.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if len(m.Tags) == 0 || m.TotalDocs == 0 {
		return nil, fmt.Errorf("model artifact %s is empty", path)
	}
	return &m, nil
}
