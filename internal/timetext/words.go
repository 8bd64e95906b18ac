package timetext

import (
	"strconv"
	"strings"
)

// wordToNum maps English number words to their values. Tens words
// combine with ones words in hyphenated compounds ("twenty-five").
var wordToNum = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50,
}

// hourWords is the regexp alternation for hours one through twelve.
const hourWords = "one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve"

// minuteWords is the regexp alternation for spelled-out minute counts,
// compound forms listed before their bare tens so the longer token wins.
const minuteWords = "twenty-one|twenty-two|twenty-three|twenty-four|twenty-five|" +
	"twenty-six|twenty-seven|twenty-eight|twenty-nine|" +
	"thirty-one|thirty-two|thirty-three|thirty-four|thirty-five|" +
	"forty-five|fifty-five|" +
	"thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|" +
	"twenty|thirty|forty|fifty|" +
	hourWords

// parseHour converts an hour token, word or digits, to its value.
// Returns false for unknown words.
func parseHour(token string) (int, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	n, ok := wordToNum[token]
	return n, ok
}

// parseMinutes converts a minute token to its value, handling digits,
// single words, and hyphenated compounds built from a tens word plus a
// ones word ("twenty-five" -> 25).
func parseMinutes(token string) (int, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	if tens, ones, found := strings.Cut(token, "-"); found {
		return wordToNum[tens] + wordToNum[ones], true
	}
	n, ok := wordToNum[token]
	return n, ok
}
