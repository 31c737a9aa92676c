package intent

import (
	"math/rand"
	"sync"
)

// FallbackResponse is returned for tags with no template entry.
const FallbackResponse = "I'm not sure I understand. Could you rephrase your question?"

// Responder picks response templates. The randomness source is
// injected so selection is reproducible under test.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder creates a responder seeded from the given source.
func NewResponder(seed int64) *Responder {
	return &Responder{rng: rand.New(rand.NewSource(seed))}
}

// Response returns one uniformly random template for the tag, or the
// fixed fallback string when the tag is unknown.
func (r *Responder) Response(m *Model, tag string) string {
	templates := m.Responses[tag]
	if len(templates) == 0 {
		return FallbackResponse
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return templates[r.rng.Intn(len(templates))]
}
