package main

import (
	"fmt"

	"github.com/spf13/cobra"

	medtriage "github.com/careline/medtriage"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of medtriage",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("medtriage version %s\n", medtriage.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
