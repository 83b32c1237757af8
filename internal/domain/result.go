package domain

import "strings"

// maxTitleLength bounds group titles shown in lists and headings
const maxTitleLength = 120

// ReportTotals holds the aggregate counters declared by (or enumerated from) one report document
type ReportTotals struct {
	TestCount      int     `json:"test_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	SuiteCount     int     `json:"suite_count"`
}

// Add accumulates other into t
func (t *ReportTotals) Add(other ReportTotals) {
	t.TestCount += other.TestCount
	t.ElapsedSeconds += other.ElapsedSeconds
	t.SuiteCount += other.SuiteCount
}

// FailureGroup is the set of test cases sharing the same resolved reason
type FailureGroup struct {
	Reason string      `json:"reason"`
	Items  []*TestCase `json:"items"`
}

// TestFiles returns the distinct, non-empty test files of the group in item order
func (g FailureGroup) TestFiles() []string {
	seen := make(map[string]bool)
	var files []string
	for _, item := range g.Items {
		if item.TestFile == "" || seen[item.TestFile] {
			continue
		}
		seen[item.TestFile] = true
		files = append(files, item.TestFile)
	}
	return files
}

// Title returns a single-line label for the group. Multi-line reasons keep
// their first non-empty line followed by an ellipsis; the reason itself,
// which is the grouping key, is left untouched.
func (g FailureGroup) Title() string {
	text := strings.TrimSpace(g.Reason)
	title, rest, multiline := strings.Cut(text, "\n")
	title = strings.TrimSpace(strings.TrimSuffix(title, "\r"))
	truncated := multiline && strings.TrimSpace(rest) != ""

	if r := []rune(title); len(r) > maxTitleLength {
		title = strings.TrimSpace(string(r[:maxTitleLength]))
		truncated = true
	}
	if truncated {
		title += " …"
	}
	return title
}

// Stats contains the global counters shown above the groups
type Stats struct {
	TestSuiteCount int     `json:"test_suite_count"`
	TotalTests     int     `json:"total_tests"`
	TotalTime      float64 `json:"total_time"`
	Succeeded      int     `json:"succeeded"`
	Failed         int     `json:"failed"`
	GroupCount     int     `json:"group_count"`
}

// Result is the complete output of loading one archive
type Result struct {
	LoadID      string         `json:"load_id"`
	Source      string         `json:"source"`
	ArchiveHash string         `json:"archive_hash,omitempty"`
	Stats       Stats          `json:"stats"`
	Groups      []FailureGroup `json:"groups"`
	Records     []*TestCase    `json:"-"`
	Screenshots []string       `json:"screenshots"`
	Warnings    []string       `json:"warnings,omitempty"`
}
