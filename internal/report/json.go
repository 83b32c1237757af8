package report

import (
	"encoding/json"
	"fmt"
	"io"

	"cfr/internal/domain"
	"cfr/internal/triage"
)

type export struct {
	*domain.Result
	Selected []string `json:"selected,omitempty"`
	Reviewed []string `json:"reviewed,omitempty"`
}

// WriteJSON writes the stats and groups of a load result, plus the triage
// marks when state is non-nil.
func WriteJSON(w io.Writer, result *domain.Result, state *triage.State) error {
	out := export{Result: result}
	if state != nil {
		out.Selected = state.SelectedFiles()
		out.Reviewed = state.Reviewed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
