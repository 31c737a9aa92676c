package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careline/medtriage/internal/checker"
	"github.com/careline/medtriage/internal/intent"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the tree definition and intent corpus for consistency",
	Long: `Loads the symptom tree and the intent corpus and reports integrity
problems: a missing root, dangling next references, question nodes with
no options, or intents without patterns or responses.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		failed := false

		tree, err := checker.LoadTree(cfg.TreePath)
		if err != nil {
			fmt.Printf("Tree: %v\n", err)
			failed = true
		} else {
			fmt.Printf("Tree: %d nodes, %d conditions ✅\n", len(tree.Nodes), len(tree.Conditions))
		}

		corpus, err := intent.LoadCorpus(cfg.CorpusPath)
		if err != nil {
			fmt.Printf("Corpus: %v\n", err)
			failed = true
		} else {
			fmt.Printf("Corpus: %d intents ✅\n", len(corpus.Intents))
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
