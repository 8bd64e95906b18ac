// Package excerpt carves bounded, sentence-aligned quote excerpts out
// of source text around a recognised time reference.
package excerpt

import (
	"strings"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// Defaults for the extraction window and the accepted length band.
const (
	DefaultCharsBefore = 150
	DefaultCharsAfter  = 150
	MinQuoteLength     = 50
	MaxQuoteLength     = 500
)

// sentenceEnders are the punctuation marks treated as sentence
// terminators when snapping excerpt edges.
const sentenceEnders = ".!?"

// Options bound the raw extraction window and the accepted total length.
type Options struct {
	CharsBefore int
	CharsAfter  int
	MinLength   int
	MaxLength   int
}

// DefaultOptions returns the standard extraction window and length band.
func DefaultOptions() Options {
	return Options{
		CharsBefore: DefaultCharsBefore,
		CharsAfter:  DefaultCharsAfter,
		MinLength:   MinQuoteLength,
		MaxLength:   MaxQuoteLength,
	}
}

// QuoteContext builds a quote around the match, snapping both edges to
// sentence boundaries where possible. It returns nil when the resulting
// excerpt falls outside the accepted length band; that is an expected
// outcome, not an error. At text boundaries the corresponding span is
// empty.
func QuoteContext(text string, m domain.Match, opts Options) *domain.Quote {
	if m.StartPos < 0 || m.EndPos > len(text) || m.StartPos >= m.EndPos {
		return nil
	}

	start := m.StartPos - opts.CharsBefore
	if start < 0 {
		start = 0
	}
	end := m.EndPos + opts.CharsAfter
	if end > len(text) {
		end = len(text)
	}

	// Snap the leading edge forward to just after the sentence
	// terminator nearest the match, so the excerpt does not begin
	// mid-sentence. Keep the full window when none exists.
	lead := text[start:m.StartPos]
	if idx := strings.LastIndexAny(lead, sentenceEnders); idx >= 0 {
		lead = lead[idx+1:]
	}
	lead = strings.TrimLeft(lead, " \t\n\r")

	// Snap the trailing edge back to just after the last sentence
	// terminator in the window; this always retains the sentence
	// containing the match when one is terminated inside the window.
	trail := text[m.EndPos:end]
	if idx := strings.LastIndexAny(trail, sentenceEnders); idx >= 0 {
		trail = trail[:idx+1]
	}

	timeCase := text[m.StartPos:m.EndPos]
	total := len(lead) + len(timeCase) + len(trail)
	if total < opts.MinLength || total > opts.MaxLength {
		return nil
	}

	q := domain.NewQuote(lead, timeCase, trail, "", "")
	return &q
}
