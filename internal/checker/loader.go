package checker

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/careline/medtriage/pkg/domain"
)

// LoadTree reads a tree definition from a YAML or JSON file, decodes it
// into the typed graph, and validates it eagerly. Any integrity problem
// is fatal here so the runtime walk never needs defensive checks.
func LoadTree(path string) (*domain.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree definition %s: %w", path, err)
	}
	tree, err := ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("tree definition %s: %w", path, err)
	}
	return tree, nil
}

// ParseTree decodes and validates a serialized tree definition.
// YAML is a superset of JSON here, so both formats decode on this path.
func ParseTree(data []byte) (*domain.Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var tree domain.Tree
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           &tree,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// Node IDs live in the map keys; copy them onto the nodes.
	for id, node := range tree.Nodes {
		node.ID = id
		tree.Nodes[id] = node
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return &tree, nil
}
