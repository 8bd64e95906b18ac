package domain

// MeridiemHint tags how a match's 12-hour ambiguity was resolved.
type MeridiemHint string

const (
	// HintAM marks a match resolved to the morning half of the day.
	HintAM MeridiemHint = "am"

	// HintPM marks a match resolved to the afternoon/evening half.
	HintPM MeridiemHint = "pm"

	// HintAbsent marks a match whose hour stayed ambiguous: no explicit
	// marker and no contextual resolution. The hour is used as-is.
	HintAbsent MeridiemHint = ""
)

// Match is a recognised clock-time reference in source text.
// It is produced transiently per scan and consumed immediately by the
// quote extractor; it is never persisted.
type Match struct {
	// Time24h is the canonical "HH:MM" key, HH in [00,23], MM in [00,59].
	// This is the primary grouping key for the whole corpus.
	Time24h string

	// TimeText is the exact matched substring, original casing preserved.
	TimeText string

	// StartPos and EndPos are half-open byte offsets into the source
	// text: 0 <= StartPos < EndPos <= len(text).
	StartPos int
	EndPos   int

	// Hint records the AM/PM resolution, HintAbsent when ambiguous.
	Hint MeridiemHint
}
