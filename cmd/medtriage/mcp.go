package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	medtriage "github.com/careline/medtriage"
	mcpAdapter "github.com/careline/medtriage/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Exposes the triage engine as MCP tools (triage_classify, symptom_start,
symptom_answer) so LLM agents can drive it over stdin/stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cfg)

		engine, err := medtriage.New(cfg.TreePath, cfg.CorpusPath,
			medtriage.WithLogger(logger),
			medtriage.WithArtifact(cfg.ArtifactPath),
		)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		srv := mcpAdapter.NewServer(engine)
		if err := srv.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
