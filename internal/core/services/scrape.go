package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driving"
	"github.com/clockprose/clockprose-cli/internal/dedupe"
	"github.com/clockprose/clockprose-cli/internal/excerpt"
	"github.com/clockprose/clockprose-cli/internal/logger"
	"github.com/clockprose/clockprose-cli/internal/timetext"
)

// Ensure ScrapeService implements the interface.
var _ driving.Scraper = (*ScrapeService)(nil)

// ScrapeService runs sources through the extraction pipeline:
// time matching, excerpt extraction, optional AI refinement, and
// grouping by time key. The processed-ID store is constructor-injected
// so runs are isolated and testable.
type ScrapeService struct {
	processed driven.ProcessedStore
	refiner   driven.Refiner // optional, may be nil
	opts      excerpt.Options
	threshold float64
}

// NewScrapeService creates a scrape service. refiner may be nil to
// disable AI refinement.
func NewScrapeService(processed driven.ProcessedStore, refiner driven.Refiner, opts excerpt.Options, threshold float64) *ScrapeService {
	if threshold <= 0 || threshold > 1 {
		threshold = dedupe.DefaultThreshold
	}
	return &ScrapeService{
		processed: processed,
		refiner:   refiner,
		opts:      opts,
		threshold: threshold,
	}
}

// Scrape consumes up to maxDocs documents from the source (no limit
// when maxDocs <= 0) and returns the extracted quotes grouped and
// deduplicated by time key. Fetch failures for individual documents
// are counted and skipped, never fatal.
func (s *ScrapeService) Scrape(ctx context.Context, source driven.Source, maxDocs int) (domain.Corpus, *driving.ScrapeStatus, error) {
	status := &driving.ScrapeStatus{Source: source.Name()}
	corpus := make(domain.Corpus)

	logger.Info("[%s] starting scrape", source.Name())
	docsCh, errsCh := source.Documents(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil, status, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			status.FetchErrors++
			logger.Warn("[%s] fetch failed: %v", source.Name(), err)

		case doc, ok := <-docsCh:
			if !ok {
				logger.Info("[%s] complete: %d docs, %d quotes",
					source.Name(), status.DocumentsProcessed, status.QuotesExtracted)
				return dedupe.ByTime(corpus, s.threshold), status, nil
			}
			if maxDocs > 0 && status.DocumentsProcessed >= maxDocs {
				continue // drain remaining documents without processing
			}
			if err := s.processDocument(ctx, doc, corpus, status); err != nil {
				return nil, status, err
			}
		}
	}
}

// processDocument extracts quotes from one document and records it as
// processed.
func (s *ScrapeService) processDocument(ctx context.Context, doc domain.Document, corpus domain.Corpus, status *driving.ScrapeStatus) error {
	if doc.SourceID != "" {
		done, err := s.processed.IsProcessed(ctx, doc.SourceID)
		if err != nil {
			return fmt.Errorf("check processed: %w", err)
		}
		if done {
			status.DocumentsSkipped++
			logger.Debug("skipping already processed %s", doc.SourceID)
			return nil
		}
	}

	logger.Debug("processing %q (%d chars)", doc.Title, len(doc.Text))
	for _, match := range timetext.FindTimes(doc.Text) {
		quote := excerpt.QuoteContext(doc.Text, match, s.opts)
		if quote == nil {
			continue
		}
		quote.Title = doc.Title
		quote.Author = doc.Author

		kept, ok := s.refine(ctx, *quote)
		if !ok {
			continue
		}

		corpus.Add(match.Time24h, kept)
		status.QuotesExtracted++
	}
	status.DocumentsProcessed++

	if doc.SourceID != "" {
		if err := s.processed.MarkProcessed(ctx, doc.SourceID); err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}
	}
	return nil
}

// refine runs the optional AI refiner over a quote. Refiner failures
// fall back to the original quote; only an explicit not-a-good-quote
// verdict drops it.
func (s *ScrapeService) refine(ctx context.Context, quote domain.Quote) (domain.Quote, bool) {
	if s.refiner == nil {
		return quote, true
	}

	refined, err := s.refiner.Refine(ctx, quote, "")
	if err != nil {
		if errors.Is(err, domain.ErrNotGoodQuote) {
			return domain.Quote{}, false
		}
		logger.Warn("refinement failed, keeping original: %v", err)
		return quote, true
	}
	if refined == nil {
		return quote, true
	}

	// Provenance always survives refinement.
	refined.Title = quote.Title
	refined.Author = quote.Author
	return *refined, true
}
