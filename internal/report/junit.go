// Package report serializes a finished suite: the JUnit XML report consumed
// by CI, and an HTML preview of the consolidated comment.
package report

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/natefinch/atomic"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// suiteName is the fixed testsuite name and className the fixed classname
// attribute carried by every case record.
const (
	suiteName = "Compliance"
	className = "Guidelines"
)

// JUnit XML schema types.

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Errors   int          `xml:"errors,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Skipped  int         `xml:"skipped,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Classname string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Doc       string        `xml:"doc,attr"`
	Skipped   *junitOutcome `xml:"skipped,omitempty"`
	Error     *junitOutcome `xml:"error,omitempty"`
	Failure   *junitOutcome `xml:"failure,omitempty"`
}

type junitOutcome struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// convert maps the suite onto the JUnit schema: one case record per result,
// with a status-specific child element only for non-passed outcomes whose
// body is the raw diagnostic text verbatim.
func convert(suite *model.Suite, defs map[string]model.CheckDefinition) *junitSuites {
	stats := suite.Summary()

	js := junitSuite{
		Name:     suiteName,
		Tests:    stats.Total(),
		Failures: stats.Failed,
		Errors:   stats.Errors,
		Skipped:  stats.Skipped,
	}

	for _, res := range suite.Results() {
		c := junitCase{
			Classname: className,
			Name:      res.Name,
			Doc:       defs[res.Name].DocURL,
		}

		switch res.Status {
		case model.StatusSkipped:
			c.Skipped = outcome(res, "skipped")
		case model.StatusError:
			c.Error = outcome(res, "error")
		case model.StatusFailed:
			c.Failure = outcome(res, "failure")
		}

		js.Cases = append(js.Cases, c)
	}

	return &junitSuites{
		Tests:    stats.Total(),
		Failures: stats.Failed,
		Errors:   stats.Errors,
		Suites:   []junitSuite{js},
	}
}

func outcome(res model.CheckResult, typ string) *junitOutcome {
	return &junitOutcome{Message: res.Message, Type: typ, Body: res.Detail}
}

// WriteJUnit serializes the suite to path. Serialization is total over
// content: arbitrary diagnostic text is escaped by the encoder, so only I/O
// faults can fail, and those are surfaced wrapped. The file is replaced
// atomically so a crash mid-write cannot leave a truncated report.
func WriteJUnit(suite *model.Suite, defs map[string]model.CheckDefinition, path string) error {
	data, err := xml.MarshalIndent(convert(suite, defs), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
