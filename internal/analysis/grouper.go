package analysis

import (
	"sort"

	"cfr/internal/domain"
	"cfr/internal/parser"
)

// GroupByReason partitions test cases by resolved reason. Groups are sorted by
// size, largest first; groups of equal size keep the order in which their
// reason was first seen.
func GroupByReason(cases []*domain.TestCase) []domain.FailureGroup {
	index := make(map[string]int)
	var groups []domain.FailureGroup

	for _, tc := range cases {
		reason := parser.ResolveReason(tc)
		i, ok := index[reason]
		if !ok {
			i = len(groups)
			index[reason] = i
			groups = append(groups, domain.FailureGroup{Reason: reason})
		}
		groups[i].Items = append(groups[i].Items, tc)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})

	return groups
}

// Summarize computes the global counters. Suite, test and time totals come from
// the report documents; succeeded and failed come from the records themselves.
func Summarize(totals domain.ReportTotals, cases []*domain.TestCase, groups []domain.FailureGroup) domain.Stats {
	stats := domain.Stats{
		TestSuiteCount: totals.SuiteCount,
		TotalTests:     totals.TestCount,
		TotalTime:      totals.ElapsedSeconds,
		GroupCount:     len(groups),
	}
	for _, tc := range cases {
		if tc.IsFailure() {
			stats.Failed++
		} else {
			stats.Succeeded++
		}
	}
	return stats
}
