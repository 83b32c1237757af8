package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// FailureDetail is one structured diagnostic emitted during a test attempt
type FailureDetail struct {
	Reason            string `json:"reason,omitempty"`
	URL               string `json:"url,omitempty"`
	ExpectedComponent string `json:"cmp,omitempty"`
	AutoAction        string `json:"autoAction,omitempty"`
	Region            string `json:"region,omitempty"`
	FormFactor        string `json:"formFactor,omitempty"`
	TestName          string `json:"testName,omitempty"`
	Retry             int    `json:"retry"`
}

// IsRetry reports whether the detail belongs to a retried attempt.
func (d FailureDetail) IsRetry() bool {
	return d.Retry > 0
}

// UnmarshalJSON decodes a failure stats payload. Unknown fields are ignored,
// non-string text fields are left empty and a missing or non-numeric retry
// counts as the first attempt. A reason that is set to anything other than a
// string (or an empty value like null, false or 0) rejects the payload.
func (d *FailureDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("failure stats payload is not an object")
	}

	if err := checkReason(raw["reason"]); err != nil {
		return err
	}

	*d = FailureDetail{
		Reason:            rawString(raw["reason"]),
		URL:               rawString(raw["url"]),
		ExpectedComponent: rawString(raw["cmp"]),
		AutoAction:        rawString(raw["autoAction"]),
		Region:            rawString(raw["region"]),
		FormFactor:        rawString(raw["formFactor"]),
		TestName:          rawString(raw["testName"]),
		Retry:             rawRetry(raw["retry"]),
	}
	return nil
}

// ErrInvalidReason is returned for payloads whose reason is not text
var ErrInvalidReason = errors.New("failure stats reason is not a string")

func checkReason(msg json.RawMessage) error {
	switch string(bytes.TrimSpace(msg)) {
	case "", "null", "false", "0", `""`:
		return nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return ErrInvalidReason
	}
	return nil
}

func rawString(msg json.RawMessage) string {
	var s string
	if len(msg) == 0 || json.Unmarshal(msg, &s) != nil {
		return ""
	}
	return s
}

func rawRetry(msg json.RawMessage) int {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		if f > 0 {
			return int(f)
		}
		return 0
	}

	// Some emitters quote the retry counter
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
