package driven

import (
	"context"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// RunStore defines the driven port for run-history persistence.
type RunStore interface {
	// RecordRun stores a completed run together with its results atomically
	// and returns the run's database ID. Result order is preserved.
	RecordRun(ctx context.Context, run model.Run, results []model.CheckResult) (int64, error)

	// ListRuns returns the most recent runs, newest first, up to limit.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// GetResultsByRun returns the results of one run in execution order.
	GetResultsByRun(ctx context.Context, runID int64) ([]model.CheckResult, error)
}
