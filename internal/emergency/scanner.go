// Package emergency implements the keyword scanner that gates all other
// triage processing. A hit short-circuits the pipeline: no entity or
// intent work runs for that turn.
package emergency

import "strings"

// Phrases is the ordered escalation list. Matching is plain substring
// containment over lower-cased input; the first phrase in list order
// wins.
var Phrases = []string{
	"chest pain",
	"heart attack",
	"suicide",
	"suicidal",
	"kill myself",
	"want to die",
	"end my life",
	"overdose",
	"drug overdose",
	"severe bleeding",
	"heavy bleeding",
	"can't breathe",
	"cannot breathe",
	"difficulty breathing",
	"choking",
	"stroke",
	"seizure",
	"unconscious",
	"passed out",
	"anaphylaxis",
	"allergic reaction severe",
	"poisoning",
	"self harm",
	"self-harm",
}

// Response is the fixed escalation payload returned verbatim on a hit.
const Response = "🚨 **EMERGENCY DETECTED** 🚨\n\n" +
	"Based on what you've described, this may be a medical emergency. " +
	"Please take the following steps immediately:\n\n" +
	"1. **Call Emergency Services**: Dial 911 (US), 999 (UK), or 112 (EU) immediately.\n" +
	"2. **If someone is with you**, ask them to help or call for assistance.\n" +
	"3. **Do not delay** — seek professional medical help right away.\n\n" +
	"**Crisis Helplines:**\n" +
	"- Suicide Prevention: 988 (US) / 116 123 (UK)\n" +
	"- Poison Control: 1-800-222-1222 (US)\n\n" +
	"⚠️ *This chatbot is not a substitute for professional medical care. " +
	"In any life-threatening situation, please contact emergency services immediately.*"

// Scan checks text for emergency phrases. It returns the first matched
// phrase in list order. Empty or whitespace-only input never matches.
func Scan(text string) (bool, string) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false, ""
	}
	for _, phrase := range Phrases {
		if strings.Contains(lowered, phrase) {
			return true, phrase
		}
	}
	return false, ""
}
