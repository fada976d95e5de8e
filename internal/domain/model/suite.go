package model

import "fmt"

// Suite is the ordered collection of results from one run. Order is the
// check-execution order (registration order after filtering) and is part of
// the observable contract: it drives report ordering and comment ordering.
// A suite is append-only while the run is in progress and read-only after.
type Suite struct {
	results []CheckResult
	names   map[string]bool
}

// NewSuite returns an empty suite.
func NewSuite() *Suite {
	return &Suite{names: make(map[string]bool)}
}

// Append adds one result to the suite. No two entries may share a name;
// a duplicate is a framework defect and is rejected.
func (s *Suite) Append(r CheckResult) error {
	if s.names[r.Name] {
		return fmt.Errorf("duplicate result for check %q", r.Name)
	}
	s.names[r.Name] = true
	s.results = append(s.results, r)
	return nil
}

// Results returns the results in execution order. Callers must not mutate
// the returned slice.
func (s *Suite) Results() []CheckResult {
	return s.results
}

// Len returns the number of results in the suite.
func (s *Suite) Len() int { return len(s.results) }

// Summary recomputes the per-status counts from the suite. Stats are never
// stored independently, so they cannot drift from the results.
func (s *Suite) Summary() SummaryStats {
	var st SummaryStats
	for _, r := range s.results {
		switch r.Status {
		case StatusPassed:
			st.Passed++
		case StatusFailed:
			st.Failed++
		case StatusError:
			st.Errors++
		case StatusSkipped:
			st.Skipped++
		}
	}
	return st
}

// ExitCode returns the process's externally observed success/failure signal:
// the number of failed plus errored results. Skipped never counts.
func (s *Suite) ExitCode() int {
	n := 0
	for _, r := range s.results {
		if r.CountsAgainstExit() {
			n++
		}
	}
	return n
}

// IssueCount returns the number of non-passed, non-skipped results. It is
// defined identically to ExitCode; both exist because the publish path
// reports its own count and the two must stay consistent.
func (s *Suite) IssueCount() int {
	n := 0
	for _, r := range s.results {
		if r.IsIssue() {
			n++
		}
	}
	return n
}

// SummaryStats holds the per-status counts derived from a suite.
type SummaryStats struct {
	Passed  int
	Failed  int
	Errors  int
	Skipped int
}

// Total returns the number of results the stats were computed over.
func (st SummaryStats) Total() int {
	return st.Passed + st.Failed + st.Errors + st.Skipped
}
