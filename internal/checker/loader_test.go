package checker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/medtriage/internal/checker"
	"github.com/careline/medtriage/pkg/domain"
)

const validTreeYAML = `
root: root
nodes:
  root:
    question: "What is your main symptom?"
    category: general
    options:
      - text: "Fever"
        scores:
          flu: 2
        next: fever
      - text: "None of these"
  fever:
    question: "How long have you had it?"
    category: fever
    options:
      - text: "More than 3 days"
        scores:
          flu: 3
conditions:
  flu:
    description: "Influenza"
    recommendation: "Rest, fluids, and monitor your temperature."
`

func TestLoadTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validTreeYAML), 0o644))

	tree, err := checker.LoadTree(path)
	require.NoError(t, err)

	assert.Equal(t, "root", tree.Root)
	require.Contains(t, tree.Nodes, "fever")
	assert.Equal(t, "fever", tree.Nodes["fever"].ID)
	assert.Equal(t, "How long have you had it?", tree.Nodes["fever"].Question)
	require.Len(t, tree.Nodes["root"].Options, 2)
	assert.Equal(t, 2.0, tree.Nodes["root"].Options[0].Scores["flu"])
	assert.Equal(t, "Influenza", tree.Conditions["flu"].Description)
}

func TestParseTree_JSONInput(t *testing.T) {
	data := []byte(`{
		"root": "a",
		"nodes": {
			"a": {"question": "Q?", "options": [{"text": "Done", "scores": {"x": 1.5}}]}
		}
	}`)

	tree, err := checker.ParseTree(data)
	require.NoError(t, err)
	assert.Equal(t, 1.5, tree.Nodes["a"].Options[0].Scores["x"])
}

func TestParseTree_DanglingNext(t *testing.T) {
	data := []byte(`
root: a
nodes:
  a:
    question: "Q?"
    options:
      - text: "Go"
        next: missing
`)
	_, err := checker.ParseTree(data)
	assert.ErrorIs(t, err, domain.ErrInvalidTree)
}

func TestParseTree_MissingRoot(t *testing.T) {
	data := []byte(`
root: nope
nodes:
  a:
    question: "Q?"
    options:
      - text: "Done"
`)
	_, err := checker.ParseTree(data)
	assert.ErrorIs(t, err, domain.ErrInvalidTree)
}

func TestParseTree_NonFinalWithoutOptions(t *testing.T) {
	data := []byte(`
root: a
nodes:
  a:
    question: "Q?"
`)
	_, err := checker.ParseTree(data)
	assert.ErrorIs(t, err, domain.ErrInvalidTree)
}

func TestParseTree_Garbage(t *testing.T) {
	_, err := checker.ParseTree([]byte("{{{{not a document"))
	assert.Error(t, err)
}
