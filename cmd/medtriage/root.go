package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careline/medtriage/internal/config"
	"github.com/careline/medtriage/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "medtriage",
	Short: "Medtriage is a triage decision engine for health conversations",
	Long: `Medtriage answers health questions through three stages: an emergency
keyword scanner, a guided symptom checker over a weighted decision tree,
and a free-text intent classifier. It provides triage guidance, never a
diagnosis.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().String("tree", "", "Path to the symptom tree definition (overrides config)")
	rootCmd.PersistentFlags().String("corpus", "", "Path to the intent corpus (overrides config)")
	rootCmd.PersistentFlags().String("artifact", "", "Path to the trained intent model artifact (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadConfig resolves configuration from the config file, environment,
// and command-line flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("tree"); v != "" {
		cfg.TreePath = v
	}
	if v, _ := cmd.Flags().GetString("corpus"); v != "" {
		cfg.CorpusPath = v
	}
	if v, _ := cmd.Flags().GetString("artifact"); v != "" {
		cfg.ArtifactPath = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}
