package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"cfr/internal/domain"
)

// ErrMalformedReport is returned for documents that are not well-formed XML
var ErrMalformedReport = errors.New("malformed report document")

// suitePrefixPattern matches the "suite › " segments Playwright puts in front of test names
var suitePrefixPattern = regexp.MustCompile(`^.* › `)

type xmlText struct {
	Text string `xml:",chardata"`
}

type xmlTestCase struct {
	Name      string    `xml:"name,attr"`
	ClassName string    `xml:"classname,attr"`
	Time      string    `xml:"time,attr"`
	Failures  []xmlText `xml:"failure"`
	SystemOut []xmlText `xml:"system-out"`
	SystemErr []xmlText `xml:"system-err"`
}

// JUnitParser parses JUnit XML report documents
type JUnitParser struct{}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser() *JUnitParser {
	return &JUnitParser{}
}

// Parse reads one JUnit document. The root may be <testsuites> or a single
// <testsuite>; test cases are collected from every suite in document order.
func (p *JUnitParser) Parse(data []byte) (*Report, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	dec := xml.NewDecoder(bytes.NewReader(data))

	report := &Report{}
	var (
		rootSeen   bool
		depth      int
		suiteDepth int
		caseCount  int
		declared   struct{ tests, time string }
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if rootSeen {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedReport)
				}
				rootSeen = true
				declared.tests = attr(t, "tests")
				declared.time = attr(t, "time")
			}

			switch t.Name.Local {
			case "testsuite":
				report.Totals.SuiteCount++
				suiteDepth++
				depth++
			case "testcase":
				caseCount++
				var tc xmlTestCase
				if err := dec.DecodeElement(&tc, &t); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
				}
				if suiteDepth > 0 {
					report.Cases = append(report.Cases, tc.toDomain())
				}
			default:
				depth++
			}

		case xml.EndElement:
			depth--
			if t.Name.Local == "testsuite" {
				suiteDepth--
			}

		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: text outside the root element", ErrMalformedReport)
			}
		}
	}

	if !rootSeen {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedReport)
	}

	if n := positiveNumber(declared.tests); n > 0 {
		report.Totals.TestCount = int(n)
	} else {
		report.Totals.TestCount = caseCount
	}
	report.Totals.ElapsedSeconds = positiveNumber(declared.time)

	return report, nil
}

func (tc xmlTestCase) toDomain() domain.TestCase {
	return domain.TestCase{
		TestName:       StripSuitePrefix(tc.Name),
		TestFile:       tc.ClassName,
		Time:           tc.Time,
		FailureText:    firstText(tc.Failures),
		Stdout:         firstText(tc.SystemOut),
		Stderr:         firstText(tc.SystemErr),
		Attachments:    []string{},
		FailureDetails: []domain.FailureDetail{},
	}
}

// StripSuitePrefix removes everything up to and including the last " › "
func StripSuitePrefix(name string) string {
	return suitePrefixPattern.ReplaceAllString(name, "")
}

func firstText(nodes []xmlText) string {
	if len(nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(nodes[0].Text)
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// positiveNumber parses a declared counter, returning 0 unless it is a number greater than zero
func positiveNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	return f
}
