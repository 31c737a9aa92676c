package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careline/medtriage/internal/intent"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the intent model from the corpus and persist the artifact",
	Long: `Trains the intent classifier from the pattern corpus and writes the
model artifact. The server also does this on demand at startup; this
command exists to pre-build the artifact in CI or image builds.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		corpus, err := intent.LoadCorpus(cfg.CorpusPath)
		if err != nil {
			fmt.Printf("Error loading corpus: %v\n", err)
			os.Exit(1)
		}

		model, err := intent.Train(corpus)
		if err != nil {
			fmt.Printf("Error training model: %v\n", err)
			os.Exit(1)
		}

		if err := model.Save(cfg.ArtifactPath); err != nil {
			fmt.Printf("Error saving artifact: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Trained %d intents (%d patterns, %d features) -> %s\n",
			len(model.Tags), model.TotalDocs, len(model.Vocabulary), cfg.ArtifactPath)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
