// Package remediation builds the git commands that revert the most recent
// commit touching a failing test file.
package remediation

import "strings"

// NoSelection is shown instead of a batch command when nothing is selected
const NoSelection = "No items selected"

const lastCommitExpr = `git log -n 1 --pretty=format:"%H" -- `

// RevertCommand returns the command reverting the last commit of one test file
func RevertCommand(testFile string) string {
	return "git revert $(" + lastCommitExpr + quote(testFile) + ")"
}

// BatchRevertCommand returns one loop reverting the last commit of every file
func BatchRevertCommand(testFiles []string) string {
	if len(testFiles) == 0 {
		return NoSelection
	}

	quoted := make([]string, len(testFiles))
	for i, f := range testFiles {
		quoted[i] = quote(f)
	}
	return "for file in " + strings.Join(quoted, " ") + `; do git revert $(` + lastCommitExpr + `"$file"); done`
}

// quote wraps s in double quotes, escaping the characters the shell still
// interprets inside them
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
