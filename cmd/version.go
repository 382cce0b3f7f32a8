package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-checker/internal/analysis"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (skills vocabulary %s)\n", app, version, analysis.VocabularyVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
