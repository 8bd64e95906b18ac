// Package cli implements the clockprose command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clockprose/clockprose-cli/internal/logger"
)

// version is the release version, overridden at build time.
var version = "dev"

// verbose enables debug logging for the whole command tree.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clockprose",
	Short: "Build a corpus of literary quotes that mention clock times",
	Long: `clockprose scrapes public-domain books and movie scripts for
passages that mention specific clock times, extracts readable excerpts
around each mention, and assembles them into a corpus keyed by
24-hour time (HH:MM).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
