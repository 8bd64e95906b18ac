package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

func testQuote(text string) domain.Quote {
	return domain.NewQuote(text, "noon", " and all was well.", "Test Book", "Tester")
}

func TestCorpusStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	store := NewCorpusStore(path)
	ctx := context.Background()

	corpus := domain.Corpus{
		"12:00": {testQuote("The bell rang at ")},
		"07:30": {testQuote("He woke before "), testQuote("She was up well before ")},
	}
	require.NoError(t, store.Save(ctx, corpus))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, corpus, loaded)
}

func TestCorpusStore_FieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	store := NewCorpusStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Corpus{"12:00": {testQuote("At ")}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"quote_first"`)
	assert.Contains(t, text, `"quote_time_case"`)
	assert.Contains(t, text, `"quote_last"`)
	assert.Contains(t, text, `"title"`)
	assert.Contains(t, text, `"author"`)
	assert.Contains(t, text, `"sfw"`)
}

func TestCorpusStore_LoadMissingFile(t *testing.T) {
	store := NewCorpusStore(filepath.Join(t.TempDir(), "absent.json"))

	corpus, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, corpus)
}

func TestCorpusStore_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	corpus, err := NewCorpusStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, corpus)
}

func TestCorpusStore_SaveOmitsEmptyPools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	store := NewCorpusStore(path)
	ctx := context.Background()

	corpus := domain.Corpus{
		"12:00": {testQuote("At ")},
		"13:00": {},
	}
	require.NoError(t, store.Save(ctx, corpus))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded, "13:00")
	assert.Len(t, loaded, 1)
}

func TestCorpusStore_SaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "quotes.json")
	store := NewCorpusStore(path)

	require.NoError(t, store.Save(context.Background(), domain.Corpus{"12:00": {testQuote("At ")}}))
	assert.FileExists(t, path)
	assert.Equal(t, path, store.Path())
}

func TestCorpusStore_LoadDefaultsSFW(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	payload := `{"12:00": [{"quote_first": "At ", "quote_time_case": "noon", "quote_last": " it rang.", "title": "T", "author": "A"}]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	corpus, err := NewCorpusStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, corpus["12:00"], 1)
	assert.Equal(t, domain.SFWDefault, corpus["12:00"][0].SFW)
}
