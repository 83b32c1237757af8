package analysis

import (
	"strings"

	"cfr/internal/domain"
)

// AmbiguousScreenshot is a screenshot attached to test cases with different names
type AmbiguousScreenshot struct {
	Path      string
	TestNames []string
}

// AttachScreenshots sets the attachments of every test case to the screenshots
// whose file name starts with "<testName>-", keeping the given order.
// A screenshot can end up on several test cases when one test name is a
// prefix of another; such matches are kept as they are.
func AttachScreenshots(cases []*domain.TestCase, shots []string) {
	for _, tc := range cases {
		prefix := tc.TestName + "-"
		matches := []string{}
		for _, shot := range shots {
			if strings.HasPrefix(Basename(shot), prefix) {
				matches = append(matches, shot)
			}
		}
		tc.Attachments = matches
	}
}

// FindAmbiguousScreenshots reports screenshots attached to test cases with
// different test names, in the order the screenshots were first attached.
func FindAmbiguousScreenshots(cases []*domain.TestCase) []AmbiguousScreenshot {
	names := make(map[string][]string)
	var order []string
	for _, tc := range cases {
		for _, shot := range tc.Attachments {
			seen, ok := names[shot]
			if !ok {
				order = append(order, shot)
			}
			if !contains(seen, tc.TestName) {
				names[shot] = append(seen, tc.TestName)
			}
		}
	}

	var out []AmbiguousScreenshot
	for _, shot := range order {
		if len(names[shot]) > 1 {
			out = append(out, AmbiguousScreenshot{Path: shot, TestNames: names[shot]})
		}
	}
	return out
}

// Basename returns the final segment of a slash separated archive path
func Basename(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// ScreenshotLabel returns the screenshot file name with the "<testName>-" prefix removed
func ScreenshotLabel(testName, shot string) string {
	name := Basename(shot)
	if strings.HasPrefix(name, testName+"-") {
		return name[len(testName)+1:]
	}
	return name
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
