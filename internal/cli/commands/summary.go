package commands

import (
	"cfr/internal/config"
	"cfr/internal/storage"
	"cfr/internal/ui"

	"github.com/spf13/cobra"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	config  *config.Config
	loader  *loader
	storage storage.Storage
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand(cfg *config.Config, l *loader, st storage.Storage) *SummaryCommand {
	return &SummaryCommand{
		config:  cfg,
		loader:  l,
		storage: st,
	}
}

// Execute runs the command
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	a, result, err := sc.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := loadState(sc.storage, result)
	if err != nil {
		return err
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintSummary(filtered(sc.config, result), state)
	return nil
}
