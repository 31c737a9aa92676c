package intent

import (
	"encoding/json"
	"fmt"
	"os"
)

// Intent is one tag's training patterns and response templates.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Corpus is the offline training source: tag → patterns + templates.
type Corpus struct {
	Intents []Intent `json:"intents"`
}

// LoadCorpus reads a corpus file. A malformed corpus is fatal at load
// time; the classifier never trains from partial data.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var corpus Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	if len(corpus.Intents) == 0 {
		return nil, fmt.Errorf("corpus %s declares no intents", path)
	}
	for _, it := range corpus.Intents {
		if it.Tag == "" || len(it.Patterns) == 0 {
			return nil, fmt.Errorf("corpus %s: intent %q has no tag or patterns", path, it.Tag)
		}
	}
	return &corpus, nil
}
