package analysis

import (
	"path/filepath"
	"strings"

	"cfr/internal/domain"
	"cfr/internal/parser"
)

// Filter narrows groups down to the test cases a user asked for
type Filter struct {
	pattern    string
	failedOnly bool
}

// NewFilter creates a new Filter. An empty pattern matches every test case.
func NewFilter(pattern string, failedOnly bool) *Filter {
	return &Filter{pattern: pattern, failedOnly: failedOnly}
}

// Apply returns the groups restricted to matching test cases. Groups left
// without items are dropped; the relative order of groups and items is kept.
func (f *Filter) Apply(groups []domain.FailureGroup) []domain.FailureGroup {
	if f.pattern == "" && !f.failedOnly {
		return groups
	}

	var filtered []domain.FailureGroup
	for _, group := range groups {
		if f.failedOnly && group.Reason == parser.SuccessReason {
			continue
		}

		var items []*domain.TestCase
		for _, item := range group.Items {
			if f.Match(item) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			filtered = append(filtered, domain.FailureGroup{Reason: group.Reason, Items: items})
		}
	}
	return filtered
}

// Match reports whether a test case matches the pattern by test name or test file.
// Supports patterns like "consent-*" or "*banner*"
func (f *Filter) Match(tc *domain.TestCase) bool {
	if f.pattern == "" {
		return true
	}
	return matchName(f.pattern, tc.TestName) || matchName(f.pattern, filepath.Base(tc.TestFile))
}

func matchName(pattern, name string) bool {
	if name == "" {
		return false
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible match requiring every non-empty part
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
