package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/dedupe"
)

func mergeQuote(text string) domain.Quote {
	return domain.NewQuote(text, "", "", "Test Book", "Tester")
}

func TestMergeResults(t *testing.T) {
	svc := NewMergeService(dedupe.DefaultThreshold)

	t.Run("concatenates distinct pools", func(t *testing.T) {
		a := domain.Corpus{"12:00": {mergeQuote("At noon the whole village gathered in the square to eat.")}}
		b := domain.Corpus{
			"12:00": {mergeQuote("The sun stood directly overhead as the workers downed tools.")},
			"07:00": {mergeQuote("Breakfast was served at seven as the sun rose over town.")},
		}

		merged := svc.MergeResults(a, b)
		assert.Len(t, merged["12:00"], 2)
		assert.Len(t, merged["07:00"], 1)
		assert.Equal(t, 3, merged.Total())
	})

	t.Run("prunes near duplicates across results", func(t *testing.T) {
		a := domain.Corpus{"12:00": {mergeQuote("At noon the whole village gathered in the square to eat.")}}
		b := domain.Corpus{"12:00": {mergeQuote("At noon the whole village gathered in the square to eat!")}}

		merged := svc.MergeResults(a, b)
		assert.Len(t, merged["12:00"], 1)
	})

	t.Run("no results", func(t *testing.T) {
		assert.Zero(t, svc.MergeResults().Total())
	})
}

func TestMergeQuotes(t *testing.T) {
	svc := NewMergeService(dedupe.DefaultThreshold)
	existing := domain.Corpus{
		"12:00": {mergeQuote("At noon the whole village gathered in the square to eat.")},
	}

	t.Run("adds new quotes", func(t *testing.T) {
		incoming := domain.Corpus{
			"07:00": {mergeQuote("Breakfast was served at seven as the sun rose over town.")},
		}

		merged, report := svc.MergeQuotes(existing, incoming, true)
		assert.Equal(t, 1, report.Added)
		assert.Zero(t, report.DuplicatesSkipped)
		assert.Equal(t, 2, merged.Total())
	})

	t.Run("skips duplicates of existing quotes", func(t *testing.T) {
		incoming := domain.Corpus{
			"12:00": {mergeQuote("At noon the whole village gathered in the square to eat!")},
		}

		merged, report := svc.MergeQuotes(existing, incoming, true)
		assert.Zero(t, report.Added)
		assert.Equal(t, 1, report.DuplicatesSkipped)
		assert.Equal(t, 1, merged.Total())
	})

	t.Run("dedupe disabled keeps everything", func(t *testing.T) {
		incoming := domain.Corpus{
			"12:00": {mergeQuote("At noon the whole village gathered in the square to eat!")},
		}

		merged, report := svc.MergeQuotes(existing, incoming, false)
		assert.Equal(t, 1, report.Added)
		assert.Zero(t, report.DuplicatesSkipped)
		assert.Len(t, merged["12:00"], 2)
	})

	t.Run("existing corpus is not mutated", func(t *testing.T) {
		incoming := domain.Corpus{
			"12:00": {mergeQuote("The sun stood directly overhead as the workers downed tools.")},
		}

		_, _ = svc.MergeQuotes(existing, incoming, true)
		require.Len(t, existing["12:00"], 1)
	})
}

func TestNewMergeService_ThresholdFallback(t *testing.T) {
	for _, bad := range []float64{0, -1, 1.5} {
		svc := NewMergeService(bad)
		assert.Equal(t, dedupe.DefaultThreshold, svc.threshold, "threshold %v", bad)
	}
}
