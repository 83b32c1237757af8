package domain

// TestCase represents one observed test execution from a report document
type TestCase struct {
	TestName       string          `json:"test_name"`
	TestFile       string          `json:"test_file"`
	Time           string          `json:"time,omitempty"`
	FailureText    string          `json:"failure_text,omitempty"`
	Stdout         string          `json:"stdout,omitempty"`
	Stderr         string          `json:"stderr,omitempty"`
	Attachments    []string        `json:"attachments"`
	FailureDetails []FailureDetail `json:"failure_details"`
}

// IsFailure reports whether the test case failed. A case with structured
// failure details or a failure message is a failure.
func (tc *TestCase) IsFailure() bool {
	return len(tc.FailureDetails) > 0 || tc.FailureText != ""
}

// InitialDetails returns the details emitted by the first attempt (retry 0).
func (tc *TestCase) InitialDetails() []FailureDetail {
	var out []FailureDetail
	for _, d := range tc.FailureDetails {
		if !d.IsRetry() {
			out = append(out, d)
		}
	}
	return out
}

// RetryDetails returns the details emitted by retried attempts.
func (tc *TestCase) RetryDetails() []FailureDetail {
	var out []FailureDetail
	for _, d := range tc.FailureDetails {
		if d.IsRetry() {
			out = append(out, d)
		}
	}
	return out
}
