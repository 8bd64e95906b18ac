package driven

import (
	"context"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// Source streams documents from one provider of scrapeable text.
type Source interface {
	// Name returns the source name used in logs and source IDs.
	Name() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Documents streams documents and fetch errors. The document
	// channel closes when the source is exhausted; individual fetch
	// failures arrive on the error channel and never abort the stream.
	Documents(ctx context.Context) (<-chan domain.Document, <-chan error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a source supports. The scrape
// service consults these flags instead of probing for optional methods.
type SourceCapabilities struct {
	// SupportsParallelFetch indicates the source downloads documents
	// with a bounded worker pool rather than strictly sequentially.
	// Either way documents are consumed sequentially downstream.
	SupportsParallelFetch bool

	// SupportsPagination indicates the source discovers its documents
	// incrementally from a listing rather than a fixed set.
	SupportsPagination bool

	// SupportsCaching indicates fetched documents are cached on disk
	// and re-runs avoid network traffic.
	SupportsCaching bool
}
