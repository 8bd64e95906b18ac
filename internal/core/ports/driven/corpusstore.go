package driven

import (
	"context"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// CorpusStore persists the time-key-to-quote-list mapping. Load and
// Save exchange the whole corpus; merge logic lives in the services,
// not the store. A store whose backing data is missing or malformed
// loads an empty corpus rather than failing, so a merge can always run.
type CorpusStore interface {
	Load(ctx context.Context) (domain.Corpus, error)
	Save(ctx context.Context, corpus domain.Corpus) error
}
