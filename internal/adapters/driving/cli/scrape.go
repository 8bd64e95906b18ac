package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	storagefile "github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/file"
	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/services"
)

var (
	scrapeSource string
	scrapeMax    int
	scrapeOutput string
	scrapeMerge  bool
	scrapeDryRun bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape sources for time-mention quotes",
	Long: `Runs the selected document sources through the extraction
pipeline and assembles the results into a time-keyed corpus.

By default the corpus is written to the output file. With --merge it is
merged into the persisted corpus instead, skipping near-duplicates.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeSource, "source", "all", "source to scrape: gutenberg, scripts, or all")
	scrapeCmd.Flags().IntVar(&scrapeMax, "max", 0, "maximum documents per source (0 = source default)")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "new_quotes.json", "output file for scraped quotes")
	scrapeCmd.Flags().BoolVar(&scrapeMerge, "merge", false, "merge results into the persisted corpus")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "extract and report without saving anything")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	defer closeApp()

	sources, err := sourceFactory(scrapeSource)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	results := make([]domain.Corpus, 0, len(sources))

	for _, source := range sources {
		corpus, status, err := scraper.Scrape(ctx, source, scrapeMax)
		if closeErr := source.Close(); closeErr != nil {
			cmd.PrintErrf("closing %s: %v\n", source.Name(), closeErr)
		}
		if err != nil {
			return fmt.Errorf("scraping %s: %w", source.Name(), err)
		}

		cmd.Printf("[%s] %d documents, %d skipped, %d quotes, %d fetch errors\n",
			status.Source, status.DocumentsProcessed, status.DocumentsSkipped,
			status.QuotesExtracted, status.FetchErrors)
		results = append(results, corpus)
	}

	corpus := merger.MergeResults(results...)

	cmd.Println()
	cmd.Print(services.CollectStats(corpus).Format())

	if scrapeDryRun {
		cmd.Println("\nDry run: nothing saved.")
		return nil
	}

	if scrapeMerge {
		existing, err := corpusStore.Load(ctx)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
		merged, report := merger.MergeQuotes(existing, corpus, true)
		if err := corpusStore.Save(ctx, merged); err != nil {
			return fmt.Errorf("save corpus: %w", err)
		}
		cmd.Printf("\nMerged into corpus: %d added, %d duplicates skipped, %d total.\n",
			report.Added, report.DuplicatesSkipped, merged.Total())
		return nil
	}

	out := storagefile.NewCorpusStore(scrapeOutput)
	if err := out.Save(ctx, corpus); err != nil {
		return fmt.Errorf("save quotes: %w", err)
	}
	cmd.Printf("\nSaved %d quotes to %s\n", corpus.Total(), scrapeOutput)
	return nil
}
