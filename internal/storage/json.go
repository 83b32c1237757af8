package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"cfr/internal/triage"
)

// stateFile is the on-disk form of a triage state
type stateFile struct {
	Archive   string   `json:"archive"`
	UpdatedAt string   `json:"updated_at"`
	Selected  []string `json:"selected"`
	Reviewed  []string `json:"reviewed"`
}

// LoadState reads the triage state saved for an archive. A missing file yields an empty state.
func (s *JSONStorage) LoadState(archiveHash string) (*triage.State, error) {
	path := s.cfg.GetStatePath(archiveHash)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return triage.NewState(), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	state := triage.NewState()
	for _, f := range file.Selected {
		state.SetSelected(f, true)
	}
	for _, f := range file.Reviewed {
		state.SetReviewed(f, true)
	}
	return state, nil
}

// SaveState writes the triage state of an archive atomically under a file lock.
func (s *JSONStorage) SaveState(archiveHash, source string, state *triage.State) error {
	file := stateFile{
		Archive:   source,
		UpdatedAt: time.Now().Format(time.RFC3339),
		Selected:  state.SelectedFiles(),
		Reviewed:  append([]string{}, state.Reviewed...),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := LockAndWrite(s.cfg.GetStatePath(archiveHash), data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
