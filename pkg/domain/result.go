package domain

// Urgency is the three-tier escalation level attached to a final result.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ConditionAssessment is one ranked entry in the differential.
type ConditionAssessment struct {
	Name           string  `json:"name"`
	Probability    float64 `json:"probability"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
}

// Result is the final output of a completed symptom-checker session.
type Result struct {
	Conditions     []ConditionAssessment `json:"conditions"`
	Recommendation string                `json:"recommendation"`
	Urgency        Urgency               `json:"urgency"`
	Disclaimer     string                `json:"disclaimer"`
}

// Prompt is the question payload presented to the user at the current
// node of an active session.
type Prompt struct {
	SessionID string   `json:"session_id"`
	NodeID    string   `json:"node_id"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Category  string   `json:"category"`

	// Final is always false for a live prompt; kept on the wire so
	// clients can branch on one field for both start and answer
	// payloads.
	Final bool `json:"is_final"`
}

// Step is the outcome of answering a question: either the next prompt
// or, on a terminal node, the final result.
type Step struct {
	Final  bool    `json:"is_final"`
	Prompt *Prompt `json:"prompt,omitempty"`
	Result *Result `json:"result,omitempty"`
}
