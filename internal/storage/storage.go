package storage

import (
	"cfr/internal/config"
	"cfr/internal/triage"
)

// Storage persists triage decisions per archive between runs
type Storage interface {
	// LoadState returns the saved state for an archive, or an empty state
	LoadState(archiveHash string) (*triage.State, error)
	SaveState(archiveHash, source string, state *triage.State) error
	// Lock reserves an archive for one interactive session
	Lock(archiveHash string) (*SessionLock, error)
}

// JSONStorage stores triage state as JSON files under the configured state directory.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's state directory.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
