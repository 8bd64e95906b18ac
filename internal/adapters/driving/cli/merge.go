package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	storagefile "github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/file"
)

var mergeNoDedupe bool

var mergeCmd = &cobra.Command{
	Use:   "merge FILE",
	Short: "Merge a saved scrape result into the persisted corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeNoDedupe, "no-dedupe", false, "keep near-duplicate quotes instead of skipping them")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	defer closeApp()

	ctx := cmd.Context()

	incoming, err := storagefile.NewCorpusStore(args[0]).Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	if incoming.Total() == 0 {
		return fmt.Errorf("%s contains no quotes", args[0])
	}

	existing, err := corpusStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	merged, report := merger.MergeQuotes(existing, incoming, !mergeNoDedupe)
	if err := corpusStore.Save(ctx, merged); err != nil {
		return fmt.Errorf("save corpus: %w", err)
	}

	cmd.Printf("Merged %s: %d added, %d duplicates skipped, %d total.\n",
		args[0], report.Added, report.DuplicatesSkipped, merged.Total())
	return nil
}
