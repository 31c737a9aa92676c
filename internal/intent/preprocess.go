package intent

import (
	"regexp"
	"strings"
)

var punctuation = regexp.MustCompile(`[^\w\s]`)

// normalize lower-cases, trims, and strips punctuation so that
// "Hello!!!" and "hello" vectorize identically.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return punctuation.ReplaceAllString(text, "")
}

// features produces the unigram+bigram bag for normalized text.
func features(text string) []string {
	tokens := strings.Fields(normalize(text))
	if len(tokens) == 0 {
		return nil
	}

	grams := make([]string, 0, len(tokens)*2-1)
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}
