// Package memory provides in-memory store implementations used in
// tests and dry runs.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
)

// Ensure ProcessedStore implements the interface.
var _ driven.ProcessedStore = (*ProcessedStore)(nil)

// ProcessedStore is an in-memory implementation of driven.ProcessedStore.
type ProcessedStore struct {
	mu        sync.RWMutex
	processed map[string]struct{}
}

// NewProcessedStore creates a new in-memory processed-ID store.
func NewProcessedStore() *ProcessedStore {
	return &ProcessedStore{processed: make(map[string]struct{})}
}

// IsProcessed reports whether the ID was already handled.
func (s *ProcessedStore) IsProcessed(_ context.Context, sourceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.processed[sourceID]
	return ok, nil
}

// MarkProcessed records the ID as handled.
func (s *ProcessedStore) MarkProcessed(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[sourceID] = struct{}{}
	return nil
}

// Clear forgets every recorded ID.
func (s *ProcessedStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = make(map[string]struct{})
	return nil
}

// Stats summarises the recorded IDs by source prefix.
func (s *ProcessedStore) Stats(_ context.Context) (driven.ProcessedStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := driven.ProcessedStats{BySource: make(map[string]int)}
	for id := range s.processed {
		stats.Total++
		prefix, _, found := strings.Cut(id, ":")
		if !found {
			prefix = "unknown"
		}
		stats.BySource[prefix]++
	}
	return stats, nil
}
