package driving

import (
	"context"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
)

// ScrapeStatus reports progress counters for one source scrape.
type ScrapeStatus struct {
	Source             string
	DocumentsProcessed int
	DocumentsSkipped   int
	QuotesExtracted    int
	FetchErrors        int
}

// Scraper runs document sources through the extraction pipeline and
// returns a time-keyed corpus of quotes.
type Scraper interface {
	// Scrape consumes every document of one source. Individual fetch
	// failures are logged and skipped; only infrastructure failures
	// return an error.
	Scrape(ctx context.Context, source driven.Source, maxDocs int) (domain.Corpus, *ScrapeStatus, error)
}

// MergeReport summarises one merge of new quotes into a corpus.
type MergeReport struct {
	DuplicatesSkipped int
	Added             int
}

// Merger combines scrape results with each other and with the
// persisted corpus.
type Merger interface {
	// MergeResults flattens partial corpora into one, deduplicating
	// each time-key pool.
	MergeResults(results ...domain.Corpus) domain.Corpus

	// MergeQuotes merges new quotes into existing, skipping
	// cross-source duplicates when dedupe is enabled.
	MergeQuotes(existing, new domain.Corpus, dedupe bool) (domain.Corpus, MergeReport)
}
