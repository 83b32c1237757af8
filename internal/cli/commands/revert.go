package commands

import (
	"fmt"

	"cfr/internal/archive"
	"cfr/internal/config"
	"cfr/internal/discovery"
	"cfr/internal/remediation"
	"cfr/internal/storage"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RevertCommand handles the revert command
type RevertCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	storage storage.Storage
	log     logrus.FieldLogger
}

// NewRevertCommand creates a new RevertCommand
func NewRevertCommand(cfg *config.Config, scanner *discovery.Scanner, st storage.Storage, log logrus.FieldLogger) *RevertCommand {
	return &RevertCommand{
		config:  cfg,
		scanner: scanner,
		storage: st,
		log:     log,
	}
}

// Execute runs the command. Only the archive hash is needed, so the reports are not parsed.
func (rc *RevertCommand) Execute(cmd *cobra.Command, args []string) error {
	path, err := rc.scanner.Resolve(args[0])
	if err != nil {
		return err
	}

	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := rc.storage.LoadState(a.Hash())
	if err != nil {
		return fmt.Errorf("failed to load triage state: %w", err)
	}

	out := cmd.OutOrStdout()
	files := state.SelectedFiles()
	if len(files) == 0 {
		fmt.Fprintln(out, color.YellowString(remediation.NoSelection))
		return nil
	}

	if rc.config.Flags.Preview {
		lookup := remediation.NewGitLookup(rc.config.RepoPath)
		commits, errs := lookup.LastCommits(cmd.Context(), files)
		for _, file := range files {
			if commit, ok := commits[file]; ok {
				fmt.Fprintf(out, "%s  %s  %s\n", color.YellowString(shortHash(commit.Hash)), file, color.CyanString(commit.Subject))
				continue
			}
			rc.log.WithError(errs[file]).WithField("file", file).Warn("No commit to revert")
			fmt.Fprintf(out, "%s  %s\n", color.RedString("???????"), file)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, remediation.BatchRevertCommand(files))
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
