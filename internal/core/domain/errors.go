package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceClosed indicates the document source has been closed.
	ErrSourceClosed = errors.New("source closed")

	// ErrUnsupportedSource indicates an unknown source type name.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrRefinerUnavailable indicates the AI refinement service is not
	// configured. Refinement is optional; scraping proceeds without it.
	ErrRefinerUnavailable = errors.New("refiner unavailable")

	// ErrNotGoodQuote indicates the refiner judged an extraction not
	// worth keeping. The caller drops the quote.
	ErrNotGoodQuote = errors.New("not a good quote")
)
