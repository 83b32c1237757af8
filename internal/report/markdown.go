package report

import (
	"fmt"
	"strings"

	"cfr/internal/analysis"
	"cfr/internal/domain"
	"cfr/internal/remediation"
	"cfr/internal/triage"
)

// Markdown renders a load result as a Markdown document. State may be nil,
// in which case no triage marks or selection are rendered.
func Markdown(result *domain.Result, state *triage.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Failure review: %s\n\n", text(result.Source))
	fmt.Fprintf(&b, "%s\n\n", SummaryLine(result.Stats))

	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "> **Warning:** %s\n\n", text(w))
	}

	for _, group := range result.Groups {
		fmt.Fprintf(&b, "## %s (%d)\n\n", text(group.Title()), len(group.Items))
		for _, item := range group.Items {
			writeItem(&b, item, state)
		}
		if files := group.TestFiles(); len(files) > 1 {
			b.WriteString("Revert all test files of this group:\n\n")
			writeFence(&b, "sh", remediation.BatchRevertCommand(files))
		}
	}

	if state != nil {
		b.WriteString("## Selected for rollback\n\n")
		selected := state.SelectedFiles()
		if len(selected) == 0 {
			fmt.Fprintf(&b, "%s\n", remediation.NoSelection)
		} else {
			writeFence(&b, "sh", remediation.BatchRevertCommand(selected))
		}
	}

	return b.String()
}

func writeItem(b *strings.Builder, item *domain.TestCase, state *triage.State) {
	fmt.Fprintf(b, "### %s\n\n", text(item.TestName))

	var meta []string
	if item.TestFile != "" {
		meta = append(meta, code(item.TestFile))
	}
	if item.Time != "" {
		meta = append(meta, text(item.Time)+"s")
	}
	if state != nil && item.TestFile != "" {
		switch {
		case state.IsSelected(item.TestFile):
			meta = append(meta, "**rollback**")
		case state.IsReviewed(item.TestFile):
			meta = append(meta, "_reviewed_")
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "%s\n\n", strings.Join(meta, " — "))
	}

	for _, d := range item.InitialDetails() {
		writeDetail(b, d, false)
	}
	if retries := item.RetryDetails(); len(retries) > 0 {
		fmt.Fprintf(b, "#### Retries (%d)\n\n", len(retries))
		for _, d := range retries {
			writeDetail(b, d, true)
		}
	}

	if item.FailureText != "" {
		b.WriteString("Failure details:\n\n")
		writeFence(b, "", item.FailureText)
	}

	if len(item.Attachments) > 0 {
		b.WriteString("Screenshots:\n\n")
		for _, shot := range item.Attachments {
			fmt.Fprintf(b, "- %s (%s)\n", text(analysis.ScreenshotLabel(item.TestName, shot)), code(shot))
		}
		b.WriteString("\n")
	}

	if item.TestFile != "" && item.IsFailure() {
		writeFence(b, "sh", remediation.RevertCommand(item.TestFile))
	}
}

func writeDetail(b *strings.Builder, d domain.FailureDetail, showRetry bool) {
	rows := [][2]string{}
	if showRetry {
		rows = append(rows, [2]string{"Retry", fmt.Sprint(d.Retry)})
	}
	if d.URL != "" {
		rows = append(rows, [2]string{"URL", code(d.URL)})
	}
	rows = appendRow(rows, "Expected CMP", text(d.ExpectedComponent))
	rows = appendRow(rows, "Action", text(d.AutoAction))
	rows = appendRow(rows, "Region", text(d.Region))
	rows = appendRow(rows, "Form Factor", text(d.FormFactor))
	if len(rows) == 0 {
		return
	}
	for _, row := range rows {
		fmt.Fprintf(b, "- %s: %s\n", row[0], row[1])
	}
	b.WriteString("\n")
}

func appendRow(rows [][2]string, label, value string) [][2]string {
	if value == "" {
		return rows
	}
	return append(rows, [2]string{label, value})
}

// writeFence writes body as a fenced code block whose fence is longer than
// any backtick run inside body.
func writeFence(b *strings.Builder, lang, body string) {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, lang, strings.TrimRight(body, "\n"), fence)
}

// markdownSpecial holds the characters escaped in interpolated text so that
// values read from reports can never open markup, links or raw HTML.
const markdownSpecial = "\\`*_[]<>&|~#!"

// text renders s as a single line of literal Markdown text
func text(s string) string {
	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(s), " ") {
		if strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// code renders s as an inline code span on a single line
func code(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
