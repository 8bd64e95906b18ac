package domain

import "sort"

// MinutesPerDay is the number of distinct "HH:MM" keys a corpus can hold.
const MinutesPerDay = 1440

// Corpus maps a "HH:MM" time key to the quotes discovered for that
// minute, in discovery order. A key is present only while at least one
// quote maps to it. Corpus mutation is single-writer; callers serialise
// merges into a given corpus.
type Corpus map[string][]Quote

// Add appends a quote under the given time key.
func (c Corpus) Add(timeKey string, q Quote) {
	c[timeKey] = append(c[timeKey], q)
}

// Total returns the number of quotes across all keys.
func (c Corpus) Total() int {
	n := 0
	for _, quotes := range c {
		n += len(quotes)
	}
	return n
}

// Keys returns the populated time keys in ascending order.
func (c Corpus) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy with independent per-key slices.
func (c Corpus) Clone() Corpus {
	out := make(Corpus, len(c))
	for k, quotes := range c {
		cp := make([]Quote, len(quotes))
		copy(cp, quotes)
		out[k] = cp
	}
	return out
}
