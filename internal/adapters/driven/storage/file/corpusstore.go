// Package file provides a JSON-file corpus store. The on-disk shape is
// an object whose keys are "HH:MM" strings and whose values are arrays
// of quote objects, the logical corpus format shared with the sqlite
// store and with downstream consumers.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/logger"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// quoteJSON is the serialised quote shape.
type quoteJSON struct {
	QuoteFirst    string `json:"quote_first"`
	QuoteTimeCase string `json:"quote_time_case"`
	QuoteLast     string `json:"quote_last"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	SFW           string `json:"sfw"`
}

// CorpusStore persists the corpus as a pretty-printed JSON file.
type CorpusStore struct {
	path string
}

// NewCorpusStore creates a JSON-file corpus store at path.
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

// Path returns the backing file path.
func (s *CorpusStore) Path() string {
	return s.path
}

// Load reads the corpus from disk. A missing or malformed file loads
// as an empty corpus so merges can proceed against a fresh store.
func (s *CorpusStore) Load(_ context.Context) (domain.Corpus, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(domain.Corpus), nil
		}
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var raw map[string][]quoteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("corpus file %s is malformed, starting fresh: %v", s.path, err)
		return make(domain.Corpus), nil
	}

	corpus := make(domain.Corpus, len(raw))
	for timeKey, quotes := range raw {
		if len(quotes) == 0 {
			continue
		}
		pool := make([]domain.Quote, len(quotes))
		for i, q := range quotes {
			sfw := q.SFW
			if sfw == "" {
				sfw = domain.SFWDefault
			}
			pool[i] = domain.Quote{
				QuoteFirst:    q.QuoteFirst,
				QuoteTimeCase: q.QuoteTimeCase,
				QuoteLast:     q.QuoteLast,
				Title:         q.Title,
				Author:        q.Author,
				SFW:           sfw,
			}
		}
		corpus[timeKey] = pool
	}
	return corpus, nil
}

// Save writes the corpus to disk, creating parent directories as
// needed. Empty pools are omitted: a key is present only while at
// least one quote maps to it.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	raw := make(map[string][]quoteJSON, len(corpus))
	for timeKey, quotes := range corpus {
		if len(quotes) == 0 {
			continue
		}
		pool := make([]quoteJSON, len(quotes))
		for i, q := range quotes {
			pool[i] = quoteJSON{
				QuoteFirst:    q.QuoteFirst,
				QuoteTimeCase: q.QuoteTimeCase,
				QuoteLast:     q.QuoteLast,
				Title:         q.Title,
				Author:        q.Author,
				SFW:           q.SFW,
			}
		}
		raw[timeKey] = pool
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling corpus: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating corpus directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing corpus file: %w", err)
	}
	return nil
}
