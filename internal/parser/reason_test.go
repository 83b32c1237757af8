package parser

import (
	"testing"

	"cfr/internal/domain"
)

func TestResolveReason(t *testing.T) {
	tests := []struct {
		name     string
		tc       domain.TestCase
		expected string
	}{
		{
			name:     "no details and no failure text is a success",
			tc:       domain.TestCase{Stderr: "noise"},
			expected: SuccessReason,
		},
		{
			name: "structured reason wins over failure text",
			tc: domain.TestCase{
				FailureText:    "  Error: something else\n",
				FailureDetails: []domain.FailureDetail{{Reason: "Timeout"}},
			},
			expected: "Timeout",
		},
		{
			name: "first detail wins even when it is a retry",
			tc: domain.TestCase{
				FailureDetails: []domain.FailureDetail{{Reason: "Late", Retry: 1}, {Reason: "Early", Retry: 0}},
			},
			expected: "Late",
		},
		{
			name:     "indented Error line",
			tc:       domain.TestCase{FailureText: "  Error: could not find frame\nmore stack\n"},
			expected: "could not find frame",
		},
		{
			name:     "first Error line of several",
			tc:       domain.TestCase{FailureText: "expect failed\n    Error: first\n\tError: second\n"},
			expected: "first",
		},
		{
			name:     "unindented Error line falls back to raw text",
			tc:       domain.TestCase{FailureText: "Error: at column zero"},
			expected: "Error: at column zero",
		},
		{
			name:     "raw failure text",
			tc:       domain.TestCase{FailureText: "expected 1 to equal 2"},
			expected: "expected 1 to equal 2",
		},
		{
			name: "detail without reason falls through to the text",
			tc: domain.TestCase{
				FailureText:    "boom\n  Error: from text\n",
				FailureDetails: []domain.FailureDetail{{URL: "https://a.example"}},
			},
			expected: "from text",
		},
		{
			name:     "detail without reason and no text",
			tc:       domain.TestCase{FailureDetails: []domain.FailureDetail{{URL: "https://a.example"}}},
			expected: UnknownReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveReason(&tt.tc)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}
