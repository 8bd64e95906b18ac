package domain

// SFWDefault is the content tag applied to every quote the extractor
// builds. It exists for downstream filtering by consumers; the core
// never computes it.
const SFWDefault = "yes"

// Quote is a validated excerpt of prose built around one time reference.
// The three spans are contiguous: their concatenation reproduces the
// excerpt verbatim, with QuoteTimeCase holding the as-written time phrase.
// A Quote is immutable once built; refinement replaces it wholesale.
type Quote struct {
	QuoteFirst    string
	QuoteTimeCase string
	QuoteLast     string

	// Title and Author record provenance. Author is empty for
	// authorless sources such as movie scripts.
	Title  string
	Author string

	// SFW is the content tag, SFWDefault unless set otherwise.
	SFW string
}

// NewQuote builds a quote with the default content tag.
func NewQuote(first, timeCase, last, title, author string) Quote {
	return Quote{
		QuoteFirst:    first,
		QuoteTimeCase: timeCase,
		QuoteLast:     last,
		Title:         title,
		Author:        author,
		SFW:           SFWDefault,
	}
}

// Text returns the full excerpt, the concatenation of the three spans.
// Deduplication compares quotes by this text.
func (q Quote) Text() string {
	return q.QuoteFirst + q.QuoteTimeCase + q.QuoteLast
}
