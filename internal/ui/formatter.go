package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"cfr/internal/domain"
	"cfr/internal/parser"
	"cfr/internal/report"
	"cfr/internal/triage"
)

// Formatter formats and displays load results on a terminal
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	faint  = color.New(color.Faint)
)

const (
	tableTop = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableSep = "├─────────────────────────────────┼─────────────────────────────┤"
	tableEnd = "└─────────────────────────────────┴─────────────────────────────┘"
)

// PrintSummary prints the statistics table followed by the failure groups.
// State may be nil.
func (f *Formatter) PrintSummary(result *domain.Result, state *triage.State) {
	stats := result.Stats

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    CI Failure Statistics                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, tableTop)
	f.row("Archive", white, truncate(result.Source, 27))
	fmt.Fprintln(f.out, tableSep)
	f.row("Test Suites", white, stats.TestSuiteCount)
	fmt.Fprintln(f.out, tableSep)
	f.row("Total Tests", white, stats.TotalTests)
	fmt.Fprintln(f.out, tableSep)
	f.row("Successes", green, stats.Succeeded)
	fmt.Fprintln(f.out, tableSep)
	f.row("Failures", red, stats.Failed)
	fmt.Fprintln(f.out, tableSep)
	f.row("Groups", white, stats.GroupCount)
	fmt.Fprintln(f.out, tableSep)
	f.row("Time", white, report.FormatDuration(stats.TotalTime))
	fmt.Fprintln(f.out, tableSep)
	f.row("Screenshots", white, len(result.Screenshots))
	fmt.Fprintln(f.out, tableEnd)

	for _, w := range result.Warnings {
		yellow.Fprintf(f.out, "! %s\n", w)
	}

	fmt.Fprintln(f.out)
	if stats.Failed == 0 {
		green.Fprintln(f.out, "✓ No test failures found!")
		return
	}
	red.Fprintf(f.out, "✗ %d failing test(s) in %d group(s)\n\n", stats.Failed, failureGroupCount(result.Groups))
	f.PrintGroups(result.Groups, state)
}

func (f *Formatter) row(label string, c *color.Color, value interface{}) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27v", value)
	fmt.Fprintln(f.out, " │")
}

// PrintGroups prints each failure group as a tree of test files and test names.
// The success group is skipped.
func (f *Formatter) PrintGroups(groups []domain.FailureGroup, state *triage.State) {
	for _, group := range groups {
		if group.Reason == parser.SuccessReason {
			continue
		}
		yellow.Fprintf(f.out, "%s ", group.Title())
		fmt.Fprintf(f.out, "(%d)\n", len(group.Items))

		byFile := make(map[string][]*domain.TestCase)
		for _, item := range group.Items {
			byFile[item.TestFile] = append(byFile[item.TestFile], item)
		}
		files := make([]string, 0, len(byFile))
		for file := range byFile {
			files = append(files, file)
		}
		sort.Strings(files)

		for i, file := range files {
			lastFile := i == len(files)-1
			connector, childPrefix := "├── ", "│   "
			if lastFile {
				connector, childPrefix = "└── ", "    "
			}

			name := file
			if name == "" {
				name = "(unknown file)"
			}
			cyan.Fprintf(f.out, "%s%s", connector, name)
			fmt.Fprintln(f.out, mark(state, file))

			items := byFile[file]
			for j, item := range items {
				caseConnector := "├── "
				if j == len(items)-1 {
					caseConnector = "└── "
				}
				red.Fprintf(f.out, "%s%s%s\n", childPrefix, caseConnector, item.TestName)
			}
		}
		fmt.Fprintln(f.out)
	}
}

func mark(state *triage.State, file string) string {
	if state == nil || file == "" {
		return ""
	}
	switch {
	case state.IsSelected(file):
		return " " + red.Sprint("[rollback]")
	case state.IsReviewed(file):
		return " " + faint.Sprint("[reviewed]")
	}
	return ""
}

func failureGroupCount(groups []domain.FailureGroup) int {
	n := 0
	for _, g := range groups {
		if g.Reason != parser.SuccessReason {
			n++
		}
	}
	return n
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return "…" + strings.TrimLeft(string(r[len(r)-max+1:]), "/")
}
