// Package application contains the orchestration services: running the
// filtered check list sequentially, building the consolidated comment, and
// synchronizing results to the review host.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ewatkins/checkmate/internal/domain/model"
	"github.com/ewatkins/checkmate/internal/domain/port/driven"
)

// DefaultCheckTimeout bounds a single check's external tool invocations.
// Open-ended blocking on a wedged subprocess is a correctness hazard, so
// every check runs under a deadline even when its body ignores it.
const DefaultCheckTimeout = 5 * time.Minute

// RunService executes checks one after another in filtered registration
// order and collects their results into a suite. It is the only component
// besides the synchronizer with external effects.
type RunService struct {
	params  model.RunParams
	timeout time.Duration
	store   driven.RunStore // Optional run-history persistence; nil disables it.
}

// NewRunService creates a RunService. timeout <= 0 selects
// DefaultCheckTimeout; store may be nil.
func NewRunService(params model.RunParams, timeout time.Duration, store driven.RunStore) *RunService {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &RunService{params: params, timeout: timeout, store: store}
}

// Run executes every definition sequentially and returns the populated
// suite. Check failures are data, not errors; the returned error is reserved
// for framework defects (duplicate results) and history-store faults.
func (s *RunService) Run(ctx context.Context, defs []model.CheckDefinition) (*model.Suite, error) {
	suite := model.NewSuite()
	startedAt := time.Now().UTC()

	for _, def := range defs {
		slog.Info("running check", "name", def.Name)
		res := s.runOne(ctx, def)

		if res.CountsAgainstExit() {
			fmt.Printf("%s: %s: %s\n", def.Name, res.Status, res.Message)
		}

		if err := suite.Append(res); err != nil {
			return nil, err
		}
	}

	if s.store != nil {
		run := model.Run{
			CommitRange: s.params.Range.String(),
			StartedAt:   startedAt,
			FinishedAt:  time.Now().UTC(),
		}
		if _, err := s.store.RecordRun(ctx, run, suite.Results()); err != nil {
			return nil, fmt.Errorf("record run history: %w", err)
		}
	}

	return suite, nil
}

// runOne invokes a single check body under the configured timeout and
// converts every fault into a structured result. No panic or error escapes
// this boundary; an escape would be a framework defect, so it is caught and
// reported as StatusError.
func (s *RunService) runOne(ctx context.Context, def model.CheckDefinition) (res model.CheckResult) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			res = model.CheckResult{
				Name:    def.Name,
				Status:  model.StatusError,
				Message: fmt.Sprintf("check panicked: %v", r),
			}
		}
		res = normalize(def.Name, res, runCtx)
	}()

	body, err := def.Run(runCtx, s.params)
	if err != nil {
		return model.CheckResult{
			Name:    def.Name,
			Status:  model.StatusError,
			Message: fmt.Sprintf("check could not complete: %v", err),
		}
	}
	return body
}

// normalize pins the result to its definition's name and enforces the
// CheckResult invariants regardless of what the body returned.
func normalize(name string, res model.CheckResult, runCtx context.Context) model.CheckResult {
	res.Name = name

	if res.Status == model.StatusError && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.Message = "check timed out"
		res.Detail = ""
	}

	switch res.Status {
	case model.StatusPassed:
		res.Message = ""
	case model.StatusSkipped:
		if res.Message == "" {
			res.Message = "skipped without a reason"
		}
	case model.StatusFailed, model.StatusError:
		if res.Message == "" {
			res.Message = string(res.Status)
		}
	default:
		res.Message = fmt.Sprintf("check returned unknown status %q", res.Status)
		res.Status = model.StatusError
	}

	return res
}
