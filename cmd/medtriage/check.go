package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	medtriage "github.com/careline/medtriage"
	"github.com/careline/medtriage/internal/presentation/tui"
	"github.com/careline/medtriage/pkg/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a guided symptom-checker session in the terminal",
	Long: `Walks the symptom decision tree interactively: one question per step,
answered by option number, ending with the ranked assessment.`,
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

		if err := runCheck(engine); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runCheck(engine *medtriage.Engine) error {
	ctx := context.Background()
	render := tui.NewRenderer()

	prompt, err := engine.StartSession(ctx)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s\n", prompt.Question)
		for i, option := range prompt.Options {
			fmt.Printf("  %d. %s\n", i+1, option)
		}
		fmt.Print("> ")

		if !scanner.Scan() {
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			return nil
		}

		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(prompt.Options) {
			fmt.Printf("Please enter a number between 1 and %d.\n", len(prompt.Options))
			continue
		}

		step, err := engine.Answer(ctx, prompt.SessionID, choice-1)
		if err != nil {
			return err
		}
		if !step.Final {
			prompt = step.Prompt
			continue
		}

		printResult(render, step.Result)
		return nil
	}
}

func printResult(render func(string) (string, error), result *domain.Result) {
	var b strings.Builder
	b.WriteString("# Assessment\n\n")
	if len(result.Conditions) == 0 {
		b.WriteString("Your answers did not point to a specific condition.\n\n")
	}
	for _, c := range result.Conditions {
		fmt.Fprintf(&b, "- **%s** (%.1f%%): %s\n", c.Name, c.Probability, c.Description)
	}
	fmt.Fprintf(&b, "\n**Urgency**: %s\n\n%s\n\n> %s\n", result.Urgency, result.Recommendation, result.Disclaimer)

	if out, err := render(b.String()); err == nil {
		fmt.Print(out)
	} else {
		fmt.Println(b.String())
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
