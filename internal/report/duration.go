package report

import (
	"fmt"
	"math"
	"strings"

	"cfr/internal/domain"
)

// FormatDuration renders whole seconds as "1h 2m 3s". Hours are omitted when
// zero and minutes are shown whenever hours or minutes are non-zero.
func FormatDuration(seconds float64) string {
	total := int64(math.Floor(seconds))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))
	return strings.Join(parts, " ")
}

// SummaryLine returns the one-line overview of a load. The time part is left
// out when no elapsed time was reported.
func SummaryLine(stats domain.Stats) string {
	line := fmt.Sprintf("Test suites: %d — Total tests: %d — Successes: %d — Failures: %d — Groups: %d",
		stats.TestSuiteCount, stats.TotalTests, stats.Succeeded, stats.Failed, stats.GroupCount)
	if stats.TotalTime > 0 {
		line += " — Time: " + FormatDuration(stats.TotalTime)
	}
	return line
}
