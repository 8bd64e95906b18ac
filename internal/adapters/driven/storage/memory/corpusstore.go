package memory

import (
	"context"
	"sync"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu     sync.RWMutex
	corpus domain.Corpus
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{corpus: make(domain.Corpus)}
}

// Load returns a copy of the stored corpus.
func (s *CorpusStore) Load(_ context.Context) (domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus.Clone(), nil
}

// Save replaces the stored corpus.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = corpus.Clone()
	return nil
}
