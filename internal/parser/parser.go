// Package parser turns report documents into test case records and derives
// the failure signals and grouping reason of each record.
package parser

import "cfr/internal/domain"

// ReportParser parses one report document
type ReportParser interface {
	Parse(data []byte) (*Report, error)
}

// DiagnosticExtractor pulls structured failure details out of a test's stderr
type DiagnosticExtractor interface {
	Extract(stderr string) []domain.FailureDetail
}

// Report is the parsed content of one report document
type Report struct {
	Cases  []domain.TestCase
	Totals domain.ReportTotals
}
