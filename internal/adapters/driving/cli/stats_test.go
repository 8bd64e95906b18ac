package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

func TestStatsCmd_PersistedCorpus(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	seedCorpus(t)

	output, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, output, "Total quotes: 1")
	assert.Contains(t, output, "Times covered: 1/1440")
	assert.Contains(t, output, "10:00")
}

func TestStatsCmd_EmptyCorpus(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	output, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, output, "Total quotes: 0")
}

func TestStatsCmd_InputFile(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	corpus := domain.Corpus{}
	corpus.Add("07:15", domain.NewQuote("At ", "quarter past seven", " the alarm went off.", "T", ""))
	corpus.Add("07:20", domain.NewQuote("By ", "twenty past seven", " she was gone.", "T", ""))
	path := writeQuotesFile(t, corpus)

	output, err := execute(t, "stats", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Total quotes: 2")
	assert.Contains(t, output, "07:00 -   2")
}
