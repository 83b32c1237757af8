package commands

import (
	"fmt"

	"cfr/internal/analysis"
	"cfr/internal/archive"
	"cfr/internal/config"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ScreenshotsCommand handles the screenshots command
type ScreenshotsCommand struct {
	config *config.Config
	loader *loader
	log    logrus.FieldLogger
}

// NewScreenshotsCommand creates a new ScreenshotsCommand
func NewScreenshotsCommand(cfg *config.Config, l *loader, log logrus.FieldLogger) *ScreenshotsCommand {
	return &ScreenshotsCommand{
		config: cfg,
		loader: l,
		log:    log,
	}
}

// Execute runs the command
func (sc *ScreenshotsCommand) Execute(cmd *cobra.Command, args []string) error {
	a, result, err := sc.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	name := sc.config.Flags.TestName
	var shots []string
	for _, tc := range result.Records {
		if tc.TestName != name {
			continue
		}
		for _, shot := range tc.Attachments {
			if !contains(shots, shot) {
				shots = append(shots, shot)
			}
		}
	}
	if len(shots) == 0 {
		return fmt.Errorf("no screenshots found for test %q", name)
	}

	dir := sc.config.GetExportDir()
	written, err := archive.Export(cmd.Context(), a, shots, dir)
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", analysis.ScreenshotLabel(name, path), path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported %d screenshot(s) to %s", len(written), dir))
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
