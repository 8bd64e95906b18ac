// Package timetext recognises natural-language clock-time references in
// English prose and normalises each one to a canonical 24-hour "HH:MM"
// key. Six independent recognisers cover digital times, "o'clock"
// phrases, named times (noon, midnight), quarter/half relative times,
// spelled-out minutes past/to an hour, and "at X" idioms; their
// candidates are merged into a positionally sorted, non-overlapping
// sequence. Matching is pure and deterministic: the same text always
// yields the same matches.
package timetext
