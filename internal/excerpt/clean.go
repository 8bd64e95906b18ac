package excerpt

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// smartPunct maps typographic quotes and dashes to ASCII equivalents.
var smartPunct = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"—", "-", // em dash
	"–", "-", // en dash
)

// CleanText normalises prose for matching and display: typographic
// punctuation becomes ASCII, whitespace runs collapse to single spaces,
// and control characters are dropped. Sources apply this to document
// text before matching so extracted spans stay verbatim afterwards.
func CleanText(text string) string {
	text = smartPunct.Replace(text)
	text = whitespaceRun.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
