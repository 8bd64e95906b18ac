package driven

import (
	"context"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// Refiner post-processes an extracted quote, adjusting its boundaries
// or rejecting it outright. It is a best-effort collaborator: callers
// keep the original quote when refinement fails for any reason other
// than domain.ErrNotGoodQuote, which signals the quote should be
// dropped.
type Refiner interface {
	// Refine returns a replacement quote, or domain.ErrNotGoodQuote
	// when the extraction is not worth keeping. fullContext carries
	// surrounding source text when available and may be empty.
	Refine(ctx context.Context, quote domain.Quote, fullContext string) (*domain.Quote, error)
}
