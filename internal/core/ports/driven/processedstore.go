package driven

import "context"

// ProcessedStats counts processed source IDs per source name prefix.
type ProcessedStats struct {
	Total    int
	BySource map[string]int
}

// ProcessedStore remembers which document source IDs have already been
// scraped so re-runs skip them. IDs are opaque "source:item" strings.
type ProcessedStore interface {
	// IsProcessed reports whether the ID was already handled.
	IsProcessed(ctx context.Context, sourceID string) (bool, error)

	// MarkProcessed records the ID as handled.
	MarkProcessed(ctx context.Context, sourceID string) error

	// Clear forgets every recorded ID.
	Clear(ctx context.Context) error

	// Stats summarises the recorded IDs by source prefix.
	Stats(ctx context.Context) (ProcessedStats, error)
}
