package domain

import (
	"sort"
	"time"
)

// AnswerRecord is one accepted answer in a session's history.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	NodeID   string `json:"node_id"`
}

// Session is one user's in-progress walk through the decision tree.
// It is owned exclusively by the checker engine; concurrent answers
// against the same session are a caller-coordination responsibility.
type Session struct {
	ID            string `json:"id"`
	CurrentNodeID string `json:"current_node_id"`

	// Scores accumulates per-condition evidence. Values only ever grow
	// by addition; the map is never reset mid-session.
	Scores map[string]float64 `json:"scores"`

	// ScoreOrder records conditions in first-encounter order so that
	// result ranking has a stable tie-break.
	ScoreOrder []string `json:"score_order"`

	History []AnswerRecord `json:"history"`

	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// NewSession creates a fresh session positioned at the tree root.
func NewSession(id, rootNodeID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            id,
		CurrentNodeID: rootNodeID,
		Scores:        make(map[string]float64),
		CreatedAt:     now,
		LastActivity:  now,
	}
}

// AddScores merges score deltas into the accumulator. Conditions seen
// for the first time are appended to ScoreOrder; when a single delta
// map introduces several new conditions at once they are appended in
// lexical order to keep the encounter order deterministic.
func (s *Session) AddScores(deltas map[string]float64) {
	if len(deltas) == 0 {
		return
	}

	fresh := make([]string, 0, len(deltas))
	for name, delta := range deltas {
		if _, seen := s.Scores[name]; !seen {
			fresh = append(fresh, name)
		}
		s.Scores[name] += delta
	}
	sort.Strings(fresh)
	s.ScoreOrder = append(s.ScoreOrder, fresh...)
}

// Touch refreshes the idle-eviction clock.
func (s *Session) Touch() {
	s.LastActivity = time.Now().UTC()
}
