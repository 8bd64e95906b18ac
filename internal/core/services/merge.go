package services

import (
	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driving"
	"github.com/clockprose/clockprose-cli/internal/dedupe"
	"github.com/clockprose/clockprose-cli/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.Merger = (*MergeService)(nil)

// MergeService combines time-keyed corpora, pruning near-duplicates
// within and across merge operations.
type MergeService struct {
	threshold float64
}

// NewMergeService creates a merge service with the given similarity
// threshold; values outside (0,1] fall back to the default.
func NewMergeService(threshold float64) *MergeService {
	if threshold <= 0 || threshold > 1 {
		threshold = dedupe.DefaultThreshold
	}
	return &MergeService{threshold: threshold}
}

// MergeResults flattens partial corpora into one by concatenating
// per-key pools in argument order, then deduplicates every pool.
func (m *MergeService) MergeResults(results ...domain.Corpus) domain.Corpus {
	merged := make(domain.Corpus)
	for _, result := range results {
		for timeKey, quotes := range result {
			merged[timeKey] = append(merged[timeKey], quotes...)
		}
	}
	return dedupe.ByTime(merged, m.threshold)
}

// MergeQuotes merges new quotes into a copy of existing. With dedupe
// enabled it first computes which new quotes duplicate existing ones
// under the same time key and skips them, then re-deduplicates every
// pool of the merged result.
func (m *MergeService) MergeQuotes(existing, new domain.Corpus, dedupeQuotes bool) (domain.Corpus, driving.MergeReport) {
	merged := existing.Clone()

	var report driving.MergeReport
	var duplicates map[string]struct{}
	if dedupeQuotes {
		duplicates = dedupe.AcrossSources(existing, new, m.threshold)
		report.DuplicatesSkipped = len(duplicates)
		logger.Info("found %d duplicate quotes to skip", len(duplicates))
	}

	for timeKey, quotes := range new {
		for _, quote := range quotes {
			if dedupeQuotes {
				if _, dup := duplicates[quote.Text()]; dup {
					continue
				}
			}
			merged.Add(timeKey, quote)
			report.Added++
		}
	}
	logger.Info("added %d new quotes", report.Added)

	if dedupeQuotes {
		merged = dedupe.ByTime(merged, m.threshold)
	}
	return merged, report
}
