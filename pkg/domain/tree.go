package domain

import "fmt"

// Option is a selectable answer on a node. Choosing it adds its score
// deltas to the session accumulator and moves the walk to Next.
// An empty Next marks the option as terminal.
type Option struct {
	Text   string             `json:"text" yaml:"text"`
	Scores map[string]float64 `json:"scores,omitempty" yaml:"scores,omitempty"`
	Next   string             `json:"next,omitempty" yaml:"next,omitempty"`
}

// Node is a single question in the decision tree.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Final    bool     `json:"is_final,omitempty" yaml:"is_final,omitempty"`
}

// ConditionInfo carries the static description and recommendation text
// for a condition referenced by option score deltas.
type ConditionInfo struct {
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// Tree is the immutable decision-tree definition. It is loaded once at
// startup and validated eagerly so the runtime walk never needs
// existence checks mid-session.
type Tree struct {
	Root       string                   `json:"root" yaml:"root"`
	Nodes      map[string]Node          `json:"nodes" yaml:"nodes"`
	Conditions map[string]ConditionInfo `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Validate checks referential integrity of the tree: the root exists,
// every option either is terminal or points at an existing node, and
// non-terminal nodes offer at least one option.
func (t *Tree) Validate() error {
	if t.Root == "" {
		return fmt.Errorf("tree: %w: no root node declared", ErrInvalidTree)
	}
	if _, ok := t.Nodes[t.Root]; !ok {
		return fmt.Errorf("tree: %w: root node %q not defined", ErrInvalidTree, t.Root)
	}

	for id, node := range t.Nodes {
		if !node.Final && len(node.Options) == 0 {
			return fmt.Errorf("tree: %w: node %q is not final but has no options", ErrInvalidTree, id)
		}
		for i, opt := range node.Options {
			if opt.Next == "" {
				continue
			}
			if _, ok := t.Nodes[opt.Next]; !ok {
				return fmt.Errorf("tree: %w: node %q option %d points at unknown node %q",
					ErrInvalidTree, id, i, opt.Next)
			}
		}
	}
	return nil
}

// Condition returns the info for a condition, falling back to a generic
// recommendation when the table has no entry.
func (t *Tree) Condition(name string) ConditionInfo {
	if info, ok := t.Conditions[name]; ok {
		if info.Recommendation == "" {
			info.Recommendation = DefaultConditionRecommendation
		}
		return info
	}
	return ConditionInfo{Recommendation: DefaultConditionRecommendation}
}

// DefaultConditionRecommendation is used when a condition has no entry
// in the ConditionInfo table.
const DefaultConditionRecommendation = "Consult a healthcare professional."
