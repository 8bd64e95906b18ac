// Package dedupe decides whether two quote texts are near-duplicates
// and prunes quote pools accordingly. Scoring is two-stage: a cheap
// rejection pre-filter skips obviously distinct pairs, then a
// normalised edit-distance ratio scores the rest.
package dedupe

import (
	"strings"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// DefaultThreshold is the similarity score at or above which two quote
// texts are treated as near-duplicates.
const DefaultThreshold = 0.85

// lengthRatioFloor rejects pairs whose length ratio cannot plausibly
// reach a typical similarity threshold.
const lengthRatioFloor = 0.7

// prefixProbe is how many leading bytes feed the character-set overlap
// pre-check.
const prefixProbe = 20

// quickReject reports pairs that are definitely not similar enough to
// be worth scoring. It must never reject a true near-duplicate above
// threshold, only obviously distinct pairs.
func quickReject(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) != len(b)
	}

	ratio := float64(len(a)) / float64(len(b))
	if len(a) > len(b) {
		ratio = float64(len(b)) / float64(len(a))
	}
	if ratio < lengthRatioFloor {
		return true
	}

	return !prefixesShareChar(a, b)
}

// prefixesShareChar checks whether the lowercased character sets of the
// two strings' first prefixProbe bytes intersect at all.
func prefixesShareChar(a, b string) bool {
	set := map[rune]struct{}{}
	for _, r := range strings.ToLower(prefix(a)) {
		set[r] = struct{}{}
	}
	for _, r := range strings.ToLower(prefix(b)) {
		if _, ok := set[r]; ok {
			return true
		}
	}
	return false
}

func prefix(s string) string {
	if len(s) > prefixProbe {
		return s[:prefixProbe]
	}
	return s
}

// Similarity scores two strings in [0,1], 1.0 meaning identical after
// lowercasing. Pairs caught by the pre-filter score 0.0 without the
// full comparison.
func Similarity(a, b string) float64 {
	if quickReject(a, b) {
		return 0.0
	}
	return ratio(strings.ToLower(a), strings.ToLower(b))
}

// ratio is a normalised Levenshtein similarity over runes:
// 1 - distance/maxLen. Two empty strings are identical.
func ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 1.0
	}
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}

	// Single-row dynamic programming keeps allocation linear.
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return 1.0 - float64(prev[len(br)])/float64(maxLen)
}

// Quotes removes near-duplicates from a pool of quotes sharing a time
// key. The first quote is kept unconditionally; each later quote is
// compared against every kept quote and dropped at the first score
// meeting the threshold. First-seen wins regardless of source quality.
func Quotes(quotes []domain.Quote, threshold float64) []domain.Quote {
	if len(quotes) == 0 {
		return nil
	}

	unique := []domain.Quote{quotes[0]}
	uniqueTexts := []string{quotes[0].Text()}

	for _, q := range quotes[1:] {
		text := q.Text()
		duplicate := false
		for _, kept := range uniqueTexts {
			if Similarity(text, kept) >= threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, q)
			uniqueTexts = append(uniqueTexts, text)
		}
	}
	return unique
}

// ByTime deduplicates every pool of a corpus in place of a new corpus.
func ByTime(c domain.Corpus, threshold float64) domain.Corpus {
	out := make(domain.Corpus, len(c))
	for key, quotes := range c {
		out[key] = Quotes(quotes, threshold)
	}
	return out
}

// AcrossSources returns the texts of quotes in new that duplicate a
// quote already in existing under the same time key. Keys absent from
// existing contribute nothing; quotes are never compared across keys.
func AcrossSources(existing, new domain.Corpus, threshold float64) map[string]struct{} {
	duplicates := make(map[string]struct{})

	existingTexts := make(map[string][]string, len(existing))
	for key, quotes := range existing {
		texts := make([]string, len(quotes))
		for i, q := range quotes {
			texts[i] = q.Text()
		}
		existingTexts[key] = texts
	}

	for key, quotes := range new {
		texts := existingTexts[key]
		if len(texts) == 0 {
			continue
		}
		for _, q := range quotes {
			text := q.Text()
			for _, existingText := range texts {
				if Similarity(text, existingText) >= threshold {
					duplicates[text] = struct{}{}
					break
				}
			}
		}
	}
	return duplicates
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
