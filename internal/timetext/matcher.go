package timetext

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// The six recognisers. Alternations of number words are shared with
// words.go; all patterns match case-insensitively on word boundaries.
var (
	// Digital time: "3:45", "15:30", "6:00 a.m.".
	digitalPattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)?\b`)

	// O'clock: "seven o'clock", "7 o'clock", curly apostrophe included.
	oclockPattern = regexp.MustCompile(`(?i)\b(` + hourWords + `|\d{1,2})\s+o['` + "’" + `]?clock\b`)

	// Named times.
	namedPattern = regexp.MustCompile(`(?i)\b(midnight|midday|noon)\b`)

	// Quarter/half past/to: "quarter past seven", "half to three".
	relativePattern = regexp.MustCompile(`(?i)\b(quarter|half)\s+(past|to|after|before|of|till?)\s+(` + hourWords + `|\d{1,2})\b`)

	// Spelled-out minutes past/to: "twenty minutes past four", "ten to six".
	minutesPattern = regexp.MustCompile(`(?i)\b(` + minuteWords + `|\d{1,2})\s+(minutes?\s+)?(past|to|after|before|of|till?)\s+(` + hourWords + `|\d{1,2})\b`)

	// "at X" idiom with optional time-of-day qualifier.
	atTimePattern = regexp.MustCompile(`(?i)\bat\s+(` + hourWords + `|\d{1,2})(\s+in\s+the\s+(morning|afternoon|evening|night))?\b`)
)

// FindTimes scans text for clock-time references and returns them
// ordered by ascending start position with overlapping candidates
// removed. It is pure and restartable: the same text yields the same
// matches on every call.
func FindTimes(text string) []domain.Match {
	var matches []domain.Match
	matches = append(matches, findDigital(text)...)
	matches = append(matches, findOclock(text)...)
	matches = append(matches, findNamed(text)...)
	matches = append(matches, findRelative(text)...)
	matches = append(matches, findMinutes(text)...)
	matches = append(matches, findAtTime(text)...)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartPos < matches[j].StartPos
	})

	// Greedy leftmost non-overlap filter: one interpretation per span.
	filtered := matches[:0]
	lastEnd := -1
	for _, m := range matches {
		if m.StartPos >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.EndPos
		}
	}
	return filtered
}

func findDigital(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range digitalPattern.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := parseHour(group(text, loc, 1))
		minute, _ := parseMinutes(group(text, loc, 2))
		if hour > 23 || minute > 59 {
			continue
		}

		hint := domain.HintAbsent
		if marker := group(text, loc, 3); marker != "" {
			marker = strings.ReplaceAll(strings.ToLower(marker), ".", "")
			hint = domain.MeridiemHint(marker)
		} else if hour <= 12 {
			hint = detectMeridiem(text, loc[0])
		}

		out = append(out, newMatch(text, loc, hour, minute, hint))
	}
	return out
}

func findOclock(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range oclockPattern.FindAllStringSubmatchIndex(text, -1) {
		hour, ok := parseHour(group(text, loc, 1))
		if !ok || hour > 12 {
			continue
		}
		hint := detectMeridiem(text, loc[0])
		out = append(out, newMatch(text, loc, hour, 0, hint))
	}
	return out
}

func findNamed(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range namedPattern.FindAllStringSubmatchIndex(text, -1) {
		key := "12:00"
		if strings.EqualFold(group(text, loc, 1), "midnight") {
			key = "00:00"
		}
		out = append(out, domain.Match{
			Time24h:  key,
			TimeText: text[loc[0]:loc[1]],
			StartPos: loc[0],
			EndPos:   loc[1],
			Hint:     domain.HintAbsent,
		})
	}
	return out
}

func findRelative(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range relativePattern.FindAllStringSubmatchIndex(text, -1) {
		hour, ok := parseHour(group(text, loc, 3))
		if !ok || hour > 12 {
			continue
		}

		offset := 30
		if strings.EqualFold(group(text, loc, 1), "quarter") {
			offset = 15
		}

		finalHour, finalMinute := relativeTime(hour, offset, group(text, loc, 2))
		hint := detectMeridiem(text, loc[0])
		out = append(out, newMatch(text, loc, finalHour, finalMinute, hint))
	}
	return out
}

func findMinutes(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range minutesPattern.FindAllStringSubmatchIndex(text, -1) {
		minutes, ok := parseMinutes(group(text, loc, 1))
		if !ok || minutes > 59 {
			continue
		}
		hour, ok := parseHour(group(text, loc, 4))
		if !ok || hour > 12 {
			continue
		}

		finalHour, finalMinute := relativeTime(hour, minutes, group(text, loc, 3))
		hint := detectMeridiem(text, loc[0])
		out = append(out, newMatch(text, loc, finalHour, finalMinute, hint))
	}
	return out
}

func findAtTime(text string) []domain.Match {
	var out []domain.Match
	for _, loc := range atTimePattern.FindAllStringSubmatchIndex(text, -1) {
		hour, ok := parseHour(group(text, loc, 1))
		if !ok || hour > 12 {
			continue
		}

		var hint domain.MeridiemHint
		if qualifier := strings.ToLower(group(text, loc, 3)); qualifier != "" {
			// "in the morning" is authoritative; everything else is PM.
			if qualifier == "morning" {
				hint = domain.HintAM
			} else {
				hint = domain.HintPM
			}
		} else {
			hint = detectMeridiem(text, loc[0])
		}

		out = append(out, newMatch(text, loc, hour, 0, hint))
	}
	return out
}

// relativeTime applies past/to arithmetic: "past"/"after" keeps the
// hour and uses the offset as minutes; "to"/"before"/"of"/"till"
// subtracts from the next hour, wrapping 1 back to 12.
func relativeTime(hour, offset int, direction string) (int, int) {
	switch strings.ToLower(direction) {
	case "past", "after":
		return hour, offset
	default:
		if hour > 1 {
			hour--
		} else {
			hour = 12
		}
		return hour, 60 - offset
	}
}

// newMatch builds a Match from a submatch index set spanning loc[0:1].
func newMatch(text string, loc []int, hour, minute int, hint domain.MeridiemHint) domain.Match {
	return domain.Match{
		Time24h:  format24h(hour, minute, hint),
		TimeText: text[loc[0]:loc[1]],
		StartPos: loc[0],
		EndPos:   loc[1],
		Hint:     hint,
	}
}

// group extracts submatch n from a FindAllStringSubmatchIndex location,
// empty when the group did not participate.
func group(text string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n] : loc[2*n+1]]
}
