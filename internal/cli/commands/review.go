package commands

import (
	"errors"
	"fmt"

	"cfr/internal/config"
	"cfr/internal/storage"
	"cfr/internal/ui"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ReviewCommand handles the review command
type ReviewCommand struct {
	config  *config.Config
	loader  *loader
	storage storage.Storage
	log     logrus.FieldLogger
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(cfg *config.Config, l *loader, st storage.Storage, log logrus.FieldLogger) *ReviewCommand {
	return &ReviewCommand{
		config:  cfg,
		loader:  l,
		storage: st,
		log:     log,
	}
}

// Execute runs the command
func (rc *ReviewCommand) Execute(cmd *cobra.Command, args []string) error {
	a, result, err := rc.loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	lock, err := rc.storage.Lock(result.ArchiveHash)
	if err != nil {
		if errors.Is(err, storage.ErrStateLocked) {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("%s is already open in another review session", result.Source))
		}
		return err
	}
	defer lock.Unlock()

	state, err := loadState(rc.storage, result)
	if err != nil {
		return err
	}

	viewer := ui.NewFailureViewer(rc.config, rc.storage, a, rc.log)
	return viewer.View(cmd.Context(), filtered(rc.config, result), state)
}
