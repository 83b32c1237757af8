package commands

import (
	"fmt"
	"io"
	"os"

	"cfr/internal/config"
	"cfr/internal/report"
	"cfr/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config  *config.Config
	loader  *loader
	storage storage.Storage
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, l *loader, st storage.Storage) *ReportCommand {
	return &ReportCommand{
		config:  cfg,
		loader:  l,
		storage: st,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	format := rc.config.Flags.Format
	if format != "md" && format != "html" {
		return fmt.Errorf("unsupported report format %q (expected md or html)", format)
	}

	a, result, err := rc.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := loadState(rc.storage, result)
	if err != nil {
		return err
	}
	view := filtered(rc.config, result)

	var data []byte
	if format == "html" {
		data, err = report.NewHTMLRenderer().Render(view, state)
		if err != nil {
			return err
		}
	} else {
		data = []byte(report.Markdown(view, state))
	}

	return writeOutput(cmd.OutOrStdout(), rc.config.Flags.Output, data)
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(stdout, color.GreenString("✓ Written to %s", path))
	return nil
}
