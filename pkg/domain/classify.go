package domain

// Entity labels produced by the lexicon matcher. The generic recognizer
// passes its native labels (person, organization, etc.) through
// unmodified.
const (
	LabelEmergency  = "EMERGENCY"
	LabelSymptoms   = "SYMPTOMS"
	LabelBodyParts  = "BODY_PARTS"
	LabelConditions = "CONDITIONS"
)

// Entity is a labeled text span of interest. Start and End are rune
// offsets into the input, not byte offsets.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Turn is one prior message of conversational context supplied by the
// boundary layer. The core treats it as opaque.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Classification is the result of processing one free-text input.
// It is ephemeral; the core never persists it.
type Classification struct {
	Response   string   `json:"response"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities"`
	Emergency  bool     `json:"is_emergency"`
}
