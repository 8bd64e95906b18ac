package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/file"
)

func TestScrapeCmd_Use(t *testing.T) {
	assert.Equal(t, "scrape", scrapeCmd.Use)
}

func TestScrapeCmd_SavesOutputFile(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	out := filepath.Join(t.TempDir(), "quotes.json")
	output, err := execute(t, "scrape", "--source", "gutenberg", "--output", out)
	require.NoError(t, err)

	assert.Contains(t, output, "[gutenberg]")
	assert.Contains(t, output, "Total quotes: 1")
	assert.Contains(t, output, "Saved 1 quotes to "+out)

	saved, err := storagefile.NewCorpusStore(out).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved["10:00"], 1)
	assert.Equal(t, "Test Book", saved["10:00"][0].Title)
}

func TestScrapeCmd_DryRun(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	out := filepath.Join(t.TempDir(), "quotes.json")
	output, err := execute(t, "scrape", "--source", "gutenberg", "--output", out, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "Dry run: nothing saved.")
	assert.NoFileExists(t, out)

	// Dry runs still mark documents processed through the store.
	processed, err := processedStore.IsProcessed(context.Background(), "stub:1")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestScrapeCmd_MergeIntoCorpus(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	seedCorpus(t)

	output, err := execute(t, "scrape", "--source", "gutenberg", "--merge")
	require.NoError(t, err)
	assert.Contains(t, output, "Merged into corpus")

	merged, err := corpusStore.Load(context.Background())
	require.NoError(t, err)
	// The seeded quote and the scraped one share a time key but differ
	// enough to both survive.
	assert.Len(t, merged["10:00"], 2)
}

func TestScrapeCmd_UnknownSource(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	sourceFactory = buildSources

	_, err := execute(t, "scrape", "--source", "nonsense", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestScrapeCmd_SkipsProcessedDocuments(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	require.NoError(t, processedStore.MarkProcessed(context.Background(), "stub:1"))

	out := filepath.Join(t.TempDir(), "quotes.json")
	output, err := execute(t, "scrape", "--source", "gutenberg", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, output, "1 skipped")
	assert.Contains(t, output, "Total quotes: 0")
}
