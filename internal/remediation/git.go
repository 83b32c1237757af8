package remediation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCommit is returned when git has no history for a file
var ErrNoCommit = errors.New("no commit found")

// Commit is the commit a revert command would undo
type Commit struct {
	Hash    string
	Subject string
}

// GitLookup resolves revert targets in a local repository without changing it
type GitLookup struct {
	repoPath string
}

// NewGitLookup creates a new GitLookup for the repository at repoPath
func NewGitLookup(repoPath string) *GitLookup {
	return &GitLookup{repoPath: repoPath}
}

// LastCommit returns the most recent commit touching testFile
func (g *GitLookup) LastCommit(ctx context.Context, testFile string) (Commit, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "-n", "1", "--pretty=format:%H%x09%s", "--", testFile)
	cmd.Dir = g.repoPath

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Commit{}, fmt.Errorf("git log %s: %s", testFile, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Commit{}, fmt.Errorf("git log %s: %w", testFile, err)
	}

	line := strings.TrimSpace(string(output))
	if line == "" {
		return Commit{}, fmt.Errorf("%w for %s", ErrNoCommit, testFile)
	}

	hash, subject, _ := strings.Cut(line, "\t")
	return Commit{Hash: hash, Subject: subject}, nil
}

// LastCommits resolves every file, keeping going after failures. Files that
// could not be resolved are reported in errs by file name.
func (g *GitLookup) LastCommits(ctx context.Context, testFiles []string) (commits map[string]Commit, errs map[string]error) {
	commits = make(map[string]Commit)
	errs = make(map[string]error)
	for _, f := range testFiles {
		c, err := g.LastCommit(ctx, f)
		if err != nil {
			errs[f] = err
			continue
		}
		commits[f] = c
	}
	return commits, errs
}
