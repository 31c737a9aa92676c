package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	medtriage "github.com/careline/medtriage"
	"github.com/careline/medtriage/internal/presentation/tui"
	"github.com/careline/medtriage/pkg/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the triage engine in the terminal",
	Long: `Starts an interactive loop that runs each message through the triage
pipeline: emergency scan, entity extraction, and intent classification.`,
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

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		render := tui.NewRenderer()
		if interactive {
			tui.PrintBanner()
			fmt.Println("Type a message, or 'exit' to quit.")
			fmt.Println()
		}

		ctx := context.Background()
		var history []domain.Turn
		scanner := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Print("> ")
			}
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				break
			}

			result, err := engine.Classify(ctx, input, history)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			if interactive {
				if out, err := render(result.Response); err == nil {
					fmt.Print(out)
				} else {
					fmt.Println(result.Response)
				}
			} else {
				fmt.Println(result.Response)
			}

			history = append(history,
				domain.Turn{Role: "user", Content: input},
				domain.Turn{Role: "assistant", Content: result.Response},
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
