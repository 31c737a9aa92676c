// Package lexicon scans text against fixed medical keyword tables and
// merges the hits with a generic named-entity recognizer's output.
package lexicon

import (
	"strings"
	"unicode/utf8"

	"github.com/careline/medtriage/pkg/domain"
	"github.com/careline/medtriage/pkg/ports"
)

// category pairs a label with its keyword list. Slice order is the
// declaration order used for entity discovery.
type category struct {
	label    string
	keywords []string
}

var categories = []category{
	{
		label: domain.LabelSymptoms,
		keywords: []string{
			"headache", "fever", "cough", "fatigue", "nausea", "vomiting",
			"dizziness", "chest pain", "shortness of breath", "sore throat",
			"runny nose", "body aches", "chills", "diarrhea", "constipation",
			"rash", "swelling", "numbness", "tingling", "blurred vision",
			"back pain", "joint pain", "muscle pain", "stomach ache",
			"insomnia", "anxiety", "depression", "weight loss", "weight gain",
			"palpitations", "sweating", "itching", "bruising", "bleeding",
		},
	},
	{
		label: domain.LabelBodyParts,
		keywords: []string{
			"head", "chest", "stomach", "back", "neck", "shoulder",
			"arm", "leg", "knee", "ankle", "wrist", "hand", "foot",
			"throat", "eye", "ear", "nose", "heart", "lung", "liver",
			"kidney", "skin", "spine", "hip", "elbow",
		},
	},
	{
		label: domain.LabelConditions,
		keywords: []string{
			"diabetes", "hypertension", "asthma", "cold", "flu",
			"allergy", "infection", "migraine", "arthritis", "bronchitis",
			"pneumonia", "covid", "eczema", "sinusitis",
		},
	},
}

// Matcher extracts entities from free text. Stateless after
// construction; safe for concurrent use.
type Matcher struct {
	recognizer ports.Recognizer
}

// New creates a matcher. The recognizer may be nil, in which case only
// the lexicon tables are consulted.
func New(recognizer ports.Recognizer) *Matcher {
	return &Matcher{recognizer: recognizer}
}

// Extract returns entities found in text: recognizer entities first
// (native labels), then lexicon hits in category declaration order and
// keyword order within a category. Each keyword is reported once, at
// its first occurrence in the lower-cased text. Duplicates by
// (lower-cased text, label) are dropped, first occurrence wins.
//
// If the recognizer fails, the lexicon entities are still returned
// together with the recognizer error so the caller can degrade.
func (m *Matcher) Extract(text string) ([]domain.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var entities []domain.Entity
	var recErr error

	if m.recognizer != nil {
		recognized, err := m.recognizer.Recognize(text)
		if err != nil {
			recErr = err
		} else {
			entities = append(entities, recognized...)
		}
	}

	lowered := strings.ToLower(text)
	for _, cat := range categories {
		for _, keyword := range cat.keywords {
			idx := strings.Index(lowered, keyword)
			if idx < 0 {
				continue
			}
			// Offsets are rune positions, not byte positions.
			start := utf8.RuneCountInString(lowered[:idx])
			entities = append(entities, domain.Entity{
				Text:  keyword,
				Label: cat.label,
				Start: start,
				End:   start + utf8.RuneCountInString(keyword),
			})
		}
	}

	return dedupe(entities), recErr
}

// dedupe keeps the first entity for each (lower-cased text, label) pair.
func dedupe(entities []domain.Entity) []domain.Entity {
	if len(entities) == 0 {
		return nil
	}

	type key struct {
		text  string
		label string
	}
	seen := make(map[key]bool, len(entities))
	unique := make([]domain.Entity, 0, len(entities))
	for _, ent := range entities {
		k := key{text: strings.ToLower(ent.Text), label: ent.Label}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, ent)
	}
	return unique
}
