package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
)

// Stats summarises corpus coverage.
type Stats struct {
	// TotalQuotes is the quote count across all keys.
	TotalQuotes int

	// TimesCovered is the number of distinct minute keys populated,
	// out of domain.MinutesPerDay.
	TimesCovered int

	// ByHour sums quotes across the sixty keys within each hour.
	ByHour [24]int
}

// CollectStats computes coverage statistics for a corpus.
func CollectStats(c domain.Corpus) Stats {
	var stats Stats
	for timeKey, quotes := range c {
		stats.TotalQuotes += len(quotes)
		stats.TimesCovered++

		hourPart, _, found := strings.Cut(timeKey, ":")
		if !found {
			continue
		}
		hour, err := strconv.Atoi(hourPart)
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		stats.ByHour[hour] += len(quotes)
	}
	return stats
}

// Format renders the statistics block printed after a scrape: totals,
// coverage percentage, and a per-hour histogram.
func (s Stats) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total quotes: %d\n", s.TotalQuotes)
	fmt.Fprintf(&b, "Times covered: %d/%d (%.1f%%)\n",
		s.TimesCovered, domain.MinutesPerDay,
		float64(s.TimesCovered)/float64(domain.MinutesPerDay)*100)

	b.WriteString("\nQuotes by hour:\n")
	for hour := 0; hour < 24; hour++ {
		if s.ByHour[hour] == 0 {
			continue
		}
		bar := strings.Repeat("#", s.ByHour[hour]/5)
		fmt.Fprintf(&b, "  %02d:00 - %3d %s\n", hour, s.ByHour[hour], bar)
	}
	return b.String()
}
