package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	storagefile "github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/file"
	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/services"
)

var statsInput string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus coverage statistics",
	Long: `Prints quote totals, minute coverage, and a per-hour histogram
for the persisted corpus, or for a saved scrape result with --input.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsInput, "input", "i", "", "read quotes from a JSON file instead of the corpus")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	defer closeApp()

	var corpus domain.Corpus
	var err error
	if statsInput != "" {
		corpus, err = storagefile.NewCorpusStore(statsInput).Load(cmd.Context())
	} else {
		corpus, err = corpusStore.Load(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	cmd.Print(services.CollectStats(corpus).Format())
	return nil
}
