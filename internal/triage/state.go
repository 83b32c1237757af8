// Package triage holds the user's triage decisions: which test files to roll
// back and which were reviewed. Both marks are keyed by test file and are
// mutually exclusive.
package triage

import "cfr/internal/domain"

// State is owned by the presentation layer and passed to whatever renders it
type State struct {
	Selected []string `json:"selected"`
	Reviewed []string `json:"reviewed"`
}

// NewState creates an empty State
func NewState() *State {
	return &State{Selected: []string{}, Reviewed: []string{}}
}

// SetSelected marks or unmarks a test file for rollback. Marking clears the reviewed mark.
func (s *State) SetSelected(testFile string, on bool) {
	if testFile == "" {
		return
	}
	if on {
		s.Selected = add(s.Selected, testFile)
		s.Reviewed = remove(s.Reviewed, testFile)
		return
	}
	s.Selected = remove(s.Selected, testFile)
}

// SetReviewed marks or unmarks a test file as reviewed. Marking clears the rollback mark.
func (s *State) SetReviewed(testFile string, on bool) {
	if testFile == "" {
		return
	}
	if on {
		s.Reviewed = add(s.Reviewed, testFile)
		s.Selected = remove(s.Selected, testFile)
		return
	}
	s.Reviewed = remove(s.Reviewed, testFile)
}

// ToggleSelected flips the rollback mark and returns the new value
func (s *State) ToggleSelected(testFile string) bool {
	on := !s.IsSelected(testFile)
	s.SetSelected(testFile, on)
	return s.IsSelected(testFile)
}

// ToggleReviewed flips the reviewed mark and returns the new value
func (s *State) ToggleReviewed(testFile string) bool {
	on := !s.IsReviewed(testFile)
	s.SetReviewed(testFile, on)
	return s.IsReviewed(testFile)
}

// SelectGroup marks or unmarks every test file of a group for rollback
func (s *State) SelectGroup(group domain.FailureGroup, on bool) {
	for _, file := range group.TestFiles() {
		s.SetSelected(file, on)
	}
}

// GroupSelected reports whether every test file of the group is marked for rollback
func (s *State) GroupSelected(group domain.FailureGroup) bool {
	files := group.TestFiles()
	if len(files) == 0 {
		return false
	}
	for _, file := range files {
		if !s.IsSelected(file) {
			return false
		}
	}
	return true
}

func (s *State) IsSelected(testFile string) bool {
	return indexOf(s.Selected, testFile) >= 0
}

func (s *State) IsReviewed(testFile string) bool {
	return indexOf(s.Reviewed, testFile) >= 0
}

// IsProcessed reports whether the test file carries either mark
func (s *State) IsProcessed(testFile string) bool {
	return s.IsSelected(testFile) || s.IsReviewed(testFile)
}

// SelectedFiles returns the files marked for rollback in the order they were marked
func (s *State) SelectedFiles() []string {
	out := make([]string, len(s.Selected))
	copy(out, s.Selected)
	return out
}

// Clear drops every mark
func (s *State) Clear() {
	s.Selected = []string{}
	s.Reviewed = []string{}
}

func add(list []string, v string) []string {
	if indexOf(list, v) >= 0 {
		return list
	}
	return append(list, v)
}

func remove(list []string, v string) []string {
	i := indexOf(list, v)
	if i < 0 {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
