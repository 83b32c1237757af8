package archive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocator_Reports(t *testing.T) {
	locator := NewLocator("archive/", "archive/test-results/screenshots/")

	tests := []struct {
		name     string
		entries  []string
		expected []string
		err      error
	}{
		{
			name:     "plain and regional results",
			entries:  []string{"archive/results.xml", "archive/results-US.xml", "archive/results-de_1.XML"},
			expected: []string{"archive/results.xml", "archive/results-US.xml", "archive/results-de_1.XML"},
		},
		{
			name:     "keeps archive order",
			entries:  []string{"archive/results-DE.xml", "archive/readme.txt", "archive/results-US.xml"},
			expected: []string{"archive/results-DE.xml", "archive/results-US.xml"},
		},
		{
			name:     "ignores entries outside the base prefix",
			entries:  []string{"results.xml", "other/results-US.xml", "archive/results-US.xml"},
			expected: []string{"archive/results-US.xml"},
		},
		{
			name:    "rejects bad region tokens",
			entries: []string{"archive/results-.xml", "archive/results-U S.xml", "archive/results-US.xml.bak"},
			err:     ErrNoReports,
		},
		{
			name:    "no reports",
			entries: []string{"archive/test-results/screenshots/a-1.jpg"},
			err:     ErrNoReports,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := locator.Reports(tc.entries)

			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("Reports() mismatch (-want +got):\n%s", diff)
			}
			if err != tc.err {
				t.Errorf("Reports() expected error %v, got %v", tc.err, err)
			}
		})
	}
}

func TestLocator_Screenshots(t *testing.T) {
	locator := NewLocator("archive/", "archive/test-results/screenshots/")

	t.Run("matches jpg case-insensitively", func(t *testing.T) {
		entries := []string{
			"archive/test-results/screenshots/consent-banner-success.jpg",
			"archive/test-results/screenshots/consent-banner-retry1.JPG",
			"archive/test-results/screenshots/video.webm",
			"archive/test-results/screenshots/photo.jpeg",
			"archive/other/x-1.jpg",
		}
		shots, ok := locator.Screenshots(entries)
		if !ok {
			t.Fatal("expected screenshots to be found")
		}
		want := []string{
			"archive/test-results/screenshots/consent-banner-success.jpg",
			"archive/test-results/screenshots/consent-banner-retry1.JPG",
		}
		if diff := cmp.Diff(want, shots); diff != "" {
			t.Errorf("Screenshots() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("none found", func(t *testing.T) {
		shots, ok := locator.Screenshots([]string{"archive/results.xml"})
		if ok || len(shots) != 0 {
			t.Errorf("expected no screenshots, got %v", shots)
		}
	})
}
