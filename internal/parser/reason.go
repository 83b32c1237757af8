package parser

import (
	"regexp"
	"strings"

	"cfr/internal/domain"
)

const (
	// SuccessReason groups every test case that did not fail
	SuccessReason = "Success"
	// UnknownReason is used when a failure carries no usable text at all
	UnknownReason = "Unknown failure"
)

// errorLinePattern matches an indented "Error: <message>" line of a stack trace
var errorLinePattern = regexp.MustCompile(`(?m)^[ \t]+Error: (.*)$`)

// ResolveReason derives the grouping key of a test case. Structured failure
// details win over the failure text, and an "Error:" line wins over the raw text.
func ResolveReason(tc *domain.TestCase) string {
	if !tc.IsFailure() {
		return SuccessReason
	}

	if len(tc.FailureDetails) > 0 && tc.FailureDetails[0].Reason != "" {
		return tc.FailureDetails[0].Reason
	}

	if m := errorLinePattern.FindStringSubmatch(tc.FailureText); m != nil {
		if msg := strings.TrimRight(m[1], "\r"); msg != "" {
			return msg
		}
	}

	if tc.FailureText != "" {
		return tc.FailureText
	}

	return UnknownReason
}
