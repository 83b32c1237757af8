package commands

import (
	"bytes"

	"cfr/internal/config"
	"cfr/internal/report"
	"cfr/internal/storage"

	"github.com/spf13/cobra"
)

// ExportCommand handles the export command
type ExportCommand struct {
	config  *config.Config
	loader  *loader
	storage storage.Storage
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(cfg *config.Config, l *loader, st storage.Storage) *ExportCommand {
	return &ExportCommand{
		config:  cfg,
		loader:  l,
		storage: st,
	}
}

// Execute runs the command
func (ec *ExportCommand) Execute(cmd *cobra.Command, args []string) error {
	a, result, err := ec.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := loadState(ec.storage, result)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, filtered(ec.config, result), state); err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), ec.config.Flags.Output, buf.Bytes())
}
