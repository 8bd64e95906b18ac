package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clockprose/clockprose-cli/internal/adapters/driven/ai/anthropic"
	configfile "github.com/clockprose/clockprose-cli/internal/adapters/driven/config/file"
	"github.com/clockprose/clockprose-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driving"
	"github.com/clockprose/clockprose-cli/internal/core/services"
	"github.com/clockprose/clockprose-cli/internal/excerpt"
	"github.com/clockprose/clockprose-cli/internal/logger"
	"github.com/clockprose/clockprose-cli/internal/sources/fetch"
	"github.com/clockprose/clockprose-cli/internal/sources/gutenberg"
	"github.com/clockprose/clockprose-cli/internal/sources/imsdb"
)

// Package-level collaborators. ensureApp fills in whatever is nil, so
// tests can inject fakes before running a command.
var (
	appCfg         *configfile.Config
	scraper        driving.Scraper
	merger         driving.Merger
	processedStore driven.ProcessedStore
	corpusStore    driven.CorpusStore
	sourceFactory  func(which string) ([]driven.Source, error)

	appStore *sqlite.Store
)

// ensureApp wires the real adapters behind any collaborator a test has
// not already injected.
func ensureApp() error {
	if appCfg == nil {
		store, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("config store: %w", err)
		}
		cfg, err := store.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appCfg = &cfg
	}

	if processedStore == nil || corpusStore == nil {
		store, err := sqlite.NewStore(appCfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		appStore = store
		if processedStore == nil {
			processedStore = store.ProcessedStore()
		}
		if corpusStore == nil {
			corpusStore = store.CorpusStore()
		}
	}

	if scraper == nil {
		var refiner driven.Refiner
		if appCfg.Anthropic.APIKey != "" {
			r, err := anthropic.NewRefiner(anthropic.Config{
				APIKey: appCfg.Anthropic.APIKey,
				Model:  appCfg.Anthropic.Model,
			})
			if err != nil {
				return fmt.Errorf("refiner: %w", err)
			}
			refiner = r
			logger.Info("AI refinement enabled (%s)", r.ModelName())
		}

		scraper = services.NewScrapeService(processedStore, refiner, excerpt.Options{
			CharsBefore: appCfg.Extraction.CharsBefore,
			CharsAfter:  appCfg.Extraction.CharsAfter,
			MinLength:   appCfg.Extraction.MinQuoteLength,
			MaxLength:   appCfg.Extraction.MaxQuoteLength,
		}, appCfg.Extraction.DedupThreshold)
	}

	if merger == nil {
		merger = services.NewMergeService(appCfg.Extraction.DedupThreshold)
	}

	if sourceFactory == nil {
		sourceFactory = buildSources
	}

	return nil
}

// closeApp releases the store opened by ensureApp, if any.
func closeApp() {
	if appStore != nil {
		if err := appStore.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
		appStore = nil
	}
}

// cacheDir resolves the on-disk cache root, defaulting under the home
// directory next to the data dir.
func cacheDir() (string, error) {
	if appCfg.Storage.CacheDir != "" {
		return appCfg.Storage.CacheDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".clockprose", "cache"), nil
}

// buildSources constructs the requested document sources sharing one
// rate-limited fetch client.
func buildSources(which string) ([]driven.Source, error) {
	cache, err := cacheDir()
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(fetch.Config{
		RequestDelay: time.Duration(appCfg.Fetch.RequestDelaySeconds * float64(time.Second)),
		MaxRetries:   appCfg.Fetch.MaxRetries,
		Backoff:      time.Duration(appCfg.Fetch.RetryBackoffSeconds * float64(time.Second)),
	})

	var sources []driven.Source

	if which == "gutenberg" || which == "all" {
		src, err := gutenberg.NewSource(gutenberg.Config{
			Client:   client,
			CacheDir: filepath.Join(cache, "gutenberg"),
			BookIDs:  appCfg.Gutenberg.BookIDs,
			Workers:  appCfg.Fetch.MaxWorkers,
		})
		if err != nil {
			return nil, fmt.Errorf("gutenberg source: %w", err)
		}
		sources = append(sources, src)
	}

	if which == "scripts" || which == "all" {
		src, err := imsdb.NewSource(imsdb.Config{
			Client:   client,
			CacheDir: filepath.Join(cache, "imsdb"),
		})
		if err != nil {
			return nil, fmt.Errorf("imsdb source: %w", err)
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("unknown source %q (want gutenberg, scripts, or all)", which)
	}
	return sources, nil
}
