package analysis

import (
	"testing"

	"cfr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(name, reason string) *domain.TestCase {
	return &domain.TestCase{TestName: name, FailureDetails: []domain.FailureDetail{{Reason: reason}}}
}

func passing(name string) *domain.TestCase {
	return &domain.TestCase{TestName: name}
}

func reasons(groups []domain.FailureGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Reason)
	}
	return out
}

func TestGroupByReason(t *testing.T) {
	t.Run("sorted by size descending", func(t *testing.T) {
		cases := []*domain.TestCase{
			failing("a", "Timeout"),
			passing("b"),
			passing("c"),
			failing("d", "CMP not found"),
			passing("e"),
			failing("f", "CMP not found"),
		}
		groups := GroupByReason(cases)
		assert.Equal(t, []string{"Success", "CMP not found", "Timeout"}, reasons(groups))
		assert.Len(t, groups[0].Items, 3)
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		cases := []*domain.TestCase{
			failing("a", "B reason"),
			failing("b", "A reason"),
			failing("c", "C reason"),
			failing("d", "A reason"),
			failing("e", "B reason"),
		}
		groups := GroupByReason(cases)
		assert.Equal(t, []string{"B reason", "A reason", "C reason"}, reasons(groups))
	})

	t.Run("items keep input order and share records", func(t *testing.T) {
		first := failing("x", "Same")
		second := failing("y", "Same")
		groups := GroupByReason([]*domain.TestCase{first, second})
		require.Len(t, groups, 1)
		assert.Same(t, first, groups[0].Items[0])
		assert.Same(t, second, groups[0].Items[1])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupByReason(nil))
	})
}

func TestSummarize(t *testing.T) {
	cases := []*domain.TestCase{
		failing("a", "Timeout"),
		{TestName: "b", FailureText: "boom"},
		passing("c"),
	}
	groups := GroupByReason(cases)
	totals := domain.ReportTotals{TestCount: 10, ElapsedSeconds: 12.5, SuiteCount: 3}

	stats := Summarize(totals, cases, groups)

	assert.Equal(t, domain.Stats{
		TestSuiteCount: 3,
		TotalTests:     10,
		TotalTime:      12.5,
		Succeeded:      1,
		Failed:         2,
		GroupCount:     3,
	}, stats)
}
