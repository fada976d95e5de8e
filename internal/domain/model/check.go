// Package model holds the domain types shared by every component: check
// definitions, results, suites, and summary statistics.
package model

import "context"

// Status is the four-valued outcome of a compliance check. It is the single
// channel through which check bodies communicate "found issues" vs
// "infrastructure fault" vs "not applicable"; downstream consumers never
// inspect tool-specific error formats.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// RevisionRange identifies the span of commits under evaluation, either a
// single SHA or the "a..b" form. It is opaque to everything except the git
// helpers and is passed by value to every check.
type RevisionRange string

func (r RevisionRange) String() string { return string(r) }

// RunParams carries the per-run inputs handed to every check body.
type RunParams struct {
	Range    RevisionRange
	RepoDir  string // Repository root the checks operate in.
	BasePath string // Tree root for the Kconfig check; empty means not applicable.
}

// RunFunc is the run contract of a check body: given a revision range it
// returns a verdict and optional diagnostic text. A non-nil error means the
// body itself could not complete; the runner converts it to StatusError.
type RunFunc func(ctx context.Context, p RunParams) (CheckResult, error)

// CheckDefinition is one entry in the static check catalog.
type CheckDefinition struct {
	Name   string // Unique, stable key used everywhere.
	DocURL string // URI describing the rule.
	Prose  bool   // Diagnostic output is prose, not code; rendered unfenced in comments.
	Run    RunFunc
}

// CheckResult is the outcome of executing one check.
// Invariants: Status == StatusPassed iff Message is empty, and a skipped
// result always carries the skip reason in Message.
type CheckResult struct {
	Name    string
	Status  Status
	Message string // Short human summary, empty when passed.
	Detail  string // Raw diagnostic output, verbatim. May be empty or multi-paragraph.
}

// CountsAgainstExit reports whether this result contributes to the process
// exit code. Skipped and passed results never do.
func (r CheckResult) CountsAgainstExit() bool {
	return r.Status == StatusFailed || r.Status == StatusError
}

// IsIssue reports whether this result belongs in the consolidated comment:
// anything that ran and did not pass.
func (r CheckResult) IsIssue() bool {
	return r.Status != StatusPassed && r.Status != StatusSkipped
}
