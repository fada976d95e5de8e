package model

import "time"

// Run is one persisted execution of the compliance suite, stored in the
// optional run-history database together with its results.
type Run struct {
	ID          int64
	CommitRange string
	StartedAt   time.Time
	FinishedAt  time.Time
}
