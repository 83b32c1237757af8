package parser

import (
	"encoding/json"
	"strings"

	"cfr/internal/domain"

	"github.com/sirupsen/logrus"
)

// FailureStatsExtractor reads the "failure stats: {...}" lines the test
// harness writes to stderr, one per failed attempt.
type FailureStatsExtractor struct {
	lineMarker    string
	payloadMarker string
	log           logrus.FieldLogger
}

// NewFailureStatsExtractor creates an extractor keeping lines that contain
// lineMarker and decoding the JSON object that follows payloadMarker.
func NewFailureStatsExtractor(lineMarker, payloadMarker string, log logrus.FieldLogger) *FailureStatsExtractor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FailureStatsExtractor{
		lineMarker:    lineMarker,
		payloadMarker: payloadMarker,
		log:           log,
	}
}

// Extract returns the failure details found in stderr, in line order
func (e *FailureStatsExtractor) Extract(stderr string) []domain.FailureDetail {
	details := []domain.FailureDetail{}
	if stderr == "" {
		return details
	}

	for _, line := range strings.Split(stderr, "\n") {
		if !strings.Contains(line, e.lineMarker) {
			continue
		}

		payload, ok := e.payload(line)
		if !ok {
			continue
		}

		var detail domain.FailureDetail
		if err := json.Unmarshal([]byte(payload), &detail); err != nil {
			e.log.WithError(err).WithField("payload", payload).Warn("Failed to parse failure stats JSON")
			continue
		}
		detail.Reason = firstLine(detail.Reason)
		details = append(details, detail)
	}

	return details
}

// payload returns the text after the payload marker up to the end of the line
func (e *FailureStatsExtractor) payload(line string) (string, bool) {
	idx := strings.Index(line, e.payloadMarker)
	if idx < 0 {
		return "", false
	}
	payload := line[idx+len(e.payloadMarker):]
	if cr := strings.IndexByte(payload, '\r'); cr >= 0 {
		payload = payload[:cr]
	}
	return payload, payload != ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
