package ui

import (
	"context"

	"cfr/internal/domain"
	"cfr/internal/triage"
)

// Viewer displays a load result in an interactive TUI
type Viewer interface {
	View(ctx context.Context, result *domain.Result, state *triage.State) error
}
