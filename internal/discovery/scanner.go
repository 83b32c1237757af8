// Package discovery finds CI artifact archives on disk.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoArchives is returned when a directory holds no .zip archive
var ErrNoArchives = errors.New("no .zip archives found")

// Scanner scans for artifact archives in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all .zip archives in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var archives []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("archive path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .), e.g. the state dir
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), ".zip") {
			archives = append(archives, path)
		}
		return nil
	})

	return archives, err
}

// Resolve returns path itself when it is a file, or the most recently
// modified archive below it when it is a directory.
func (s *Scanner) Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("archive path does not exist: %s", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	archives, err := s.Scan(path)
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, a := range archives {
		st, err := os.Stat(a)
		if err != nil {
			continue
		}
		if latest == "" || st.ModTime().After(latestTime) {
			latest, latestTime = a, st.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoArchives, path)
	}
	return latest, nil
}
