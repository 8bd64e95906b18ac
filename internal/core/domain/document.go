package domain

// Document is a unit of source text ready for time matching.
// The core consumes only Text; Title and Author are attached to the
// quotes extracted from it. SourceID is opaque to the core and used by
// the processed-ID store to skip documents already handled.
type Document struct {
	Text     string
	Title    string
	Author   string
	SourceID string
}
