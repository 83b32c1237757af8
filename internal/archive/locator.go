package archive

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

// ErrNoReports is returned when an archive holds no report documents
var ErrNoReports = errors.New("no results XML files found")

var reportPattern = regexp.MustCompile(`(?i)results(-[A-Za-z0-9_]+)?\.xml$`)

// Locator picks report documents and screenshots out of an archive listing
type Locator struct {
	basePrefix       string
	screenshotPrefix string
}

// NewLocator creates a new Locator for the given base and screenshot prefixes
func NewLocator(basePrefix, screenshotPrefix string) *Locator {
	return &Locator{
		basePrefix:       basePrefix,
		screenshotPrefix: screenshotPrefix,
	}
}

// Reports returns the report documents among entries, in archive order
func (l *Locator) Reports(entries []string) ([]string, error) {
	var reports []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry, l.basePrefix) {
			continue
		}
		if reportPattern.MatchString(entry[len(l.basePrefix):]) {
			reports = append(reports, entry)
		}
	}

	if len(reports) == 0 {
		return nil, ErrNoReports
	}
	return reports, nil
}

// Screenshots returns the .jpg screenshots among entries, in archive order.
// An empty result is not an error; ok reports whether any were found.
func (l *Locator) Screenshots(entries []string) (shots []string, ok bool) {
	for _, entry := range entries {
		if !strings.HasPrefix(entry, l.screenshotPrefix) {
			continue
		}
		if strings.EqualFold(path.Ext(entry), ".jpg") {
			shots = append(shots, entry)
		}
	}
	return shots, len(shots) > 0
}

// ScreenshotDir returns the in-archive directory searched for screenshots
func (l *Locator) ScreenshotDir() string {
	return l.screenshotPrefix
}

// BasePrefix returns the prefix report documents must live under
func (l *Locator) BasePrefix() string {
	return l.basePrefix
}
