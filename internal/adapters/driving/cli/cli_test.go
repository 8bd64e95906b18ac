package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/clockprose/clockprose-cli/internal/adapters/driven/config/file"
	"github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/memory"
	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/core/services"
	"github.com/clockprose/clockprose-cli/internal/excerpt"
)

// stubSource streams a fixed set of documents.
type stubSource struct {
	name string
	docs []domain.Document
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{}
}

func (s *stubSource) Documents(_ context.Context) (<-chan domain.Document, <-chan error) {
	docsCh := make(chan domain.Document)
	errsCh := make(chan error, 1)
	go func() {
		defer close(docsCh)
		defer close(errsCh)
		for _, doc := range s.docs {
			docsCh <- doc
		}
	}()
	return docsCh, errsCh
}

func (s *stubSource) Close() error { return nil }

// sampleText is long enough on both sides of the time mention to pass
// the excerpt length band.
const sampleText = `The whole household had been restless since dawn, and the servants ` +
	`whispered in the corridors about the master's strange orders. It was ten o'clock ` +
	`when the bell finally rang through the hall, and every head turned toward the ` +
	`great oak door as if the sound itself had summoned something none of them wished to see.`

// resetFlags restores flag-bound variables to their defaults, since
// they persist between Execute calls.
func resetFlags() {
	scrapeSource = "all"
	scrapeMax = 0
	scrapeOutput = "new_quotes.json"
	scrapeMerge = false
	scrapeDryRun = false
	mergeNoDedupe = false
	statsInput = ""
	verbose = false
}

// setupAppTest injects in-memory collaborators so commands never touch
// the disk or network. It returns a cleanup that restores the package state.
func setupAppTest(t *testing.T) func() {
	t.Helper()
	resetFlags()

	oldCfg, oldScraper, oldMerger := appCfg, scraper, merger
	oldProcessed, oldCorpus, oldFactory := processedStore, corpusStore, sourceFactory

	cfg := configfile.Default()
	appCfg = &cfg
	processedStore = memory.NewProcessedStore()
	corpusStore = memory.NewCorpusStore()
	scraper = services.NewScrapeService(processedStore, nil,
		excerpt.DefaultOptions(), cfg.Extraction.DedupThreshold)
	merger = services.NewMergeService(cfg.Extraction.DedupThreshold)
	sourceFactory = func(which string) ([]driven.Source, error) {
		return []driven.Source{&stubSource{
			name: which,
			docs: []domain.Document{{
				Text:     sampleText,
				Title:    "Test Book",
				Author:   "Test Author",
				SourceID: "stub:1",
			}},
		}}, nil
	}

	return func() {
		appCfg, scraper, merger = oldCfg, oldScraper, oldMerger
		processedStore, corpusStore, sourceFactory = oldProcessed, oldCorpus, oldFactory
	}
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// seedCorpus stores a small corpus through the injected corpus store.
func seedCorpus(t *testing.T) domain.Corpus {
	t.Helper()

	corpus := domain.Corpus{}
	corpus.Add("10:00", domain.NewQuote("It was ", "ten o'clock", " when the bell rang.", "Seed Book", "Seed Author"))
	require.NoError(t, corpusStore.Save(context.Background(), corpus))
	return corpus
}
