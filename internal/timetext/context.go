package timetext

import (
	"fmt"
	"strings"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// contextWindow is the number of characters scanned on each side of a
// match start when inferring AM/PM from surrounding prose.
const contextWindow = 100

// Hint phrases scanned for in context. Order matters: the first AM
// phrase present anywhere in the window wins, then the first PM phrase.
// This precedence is heuristic, not authoritative, and is relied on by
// behaviour tests; do not reorder.
var (
	amHints = []string{"morning", "breakfast", "dawn", "sunrise", "a.m.", "am"}
	pmHints = []string{"afternoon", "evening", "night", "dinner", "dusk", "sunset", "p.m.", "pm", "midnight"}
)

// detectMeridiem scans a symmetric window around matchPos for
// time-of-day words and returns the inferred half of the day, or
// HintAbsent when nothing nearby disambiguates.
func detectMeridiem(text string, matchPos int) domain.MeridiemHint {
	start := matchPos - contextWindow
	if start < 0 {
		start = 0
	}
	end := matchPos + contextWindow
	if end > len(text) {
		end = len(text)
	}
	window := strings.ToLower(text[start:end])

	for _, hint := range amHints {
		if strings.Contains(window, hint) {
			return domain.HintAM
		}
	}
	for _, hint := range pmHints {
		if strings.Contains(window, hint) {
			return domain.HintPM
		}
	}
	return domain.HintAbsent
}

// format24h renders an (hour, minute, hint) triple as a zero-padded
// 24-hour "HH:MM" key. A PM hint lifts hours below 12; an AM hint maps
// 12 to 0; an absent hint leaves the hour untouched.
func format24h(hour, minute int, hint domain.MeridiemHint) string {
	if hint == domain.HintPM && hour < 12 {
		hour += 12
	} else if hint == domain.HintAM && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
