package sqlite

import (
	"context"
	"fmt"

	"github.com/ewatkins/checkmate/internal/domain/model"
	"github.com/ewatkins/checkmate/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RunStore = (*RunRepo)(nil)

// RunRepo is the SQLite implementation of the RunStore port interface.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new RunRepo backed by the given DB.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// RecordRun stores a run and its results atomically in a single transaction.
// The result position column preserves execution order.
func (r *RunRepo) RecordRun(ctx context.Context, run model.Run, results []model.CheckResult) (int64, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	const insertRun = `INSERT INTO runs (commit_range, started_at, finished_at) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, insertRun, run.CommitRange, run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	const insertResult = `
		INSERT INTO run_results (run_id, position, name, status, message, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, cr := range results {
		if _, err := tx.ExecContext(ctx, insertResult,
			runID, i, cr.Name, string(cr.Status), cr.Message, cr.Detail,
		); err != nil {
			return 0, fmt.Errorf("insert result %q for run %d: %w", cr.Name, runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run %d: %w", runID, err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepo) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	const query = `
		SELECT id, commit_range, started_at, finished_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		if err := rows.Scan(&run.ID, &run.CommitRange, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetResultsByRun returns one run's results in execution order.
func (r *RunRepo) GetResultsByRun(ctx context.Context, runID int64) ([]model.CheckResult, error) {
	const query = `
		SELECT name, status, message, detail
		FROM run_results
		WHERE run_id = ?
		ORDER BY position
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query results for run %d: %w", runID, err)
	}
	defer rows.Close()

	var results []model.CheckResult
	for rows.Next() {
		var cr model.CheckResult
		var status string
		if err := rows.Scan(&cr.Name, &status, &cr.Message, &cr.Detail); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		cr.Status = model.Status(status)
		results = append(results, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
