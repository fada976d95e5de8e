// Package driven defines the driven ports: interfaces implemented by
// outbound adapters (GitHub, SQLite) and consumed by the application layer.
package driven

import "context"

// Commit status states understood by the review host.
const (
	StatePending = "pending"
	StateSuccess = "success"
	StateFailure = "failure"
)

// CommitStatus is one named status marker attached to a commit. Context is
// the check name and doubles as the idempotency key on the host side:
// creating a status with an existing context replaces it.
type CommitStatus struct {
	State       string
	TargetURL   string // The check's doc reference.
	Description string
	Context     string
}

// IssueComment is the subset of a host comment the synchronizer needs to
// implement its merge-or-create logic.
type IssueComment struct {
	ID   int64
	Body string
}

// ReviewHost defines the driven port for the external code-review system.
// All methods take the repository as "owner/name".
type ReviewHost interface {
	// CreateCommitStatus attaches a status marker to the given commit.
	CreateCommitStatus(ctx context.Context, repo, sha string, status CommitStatus) error

	// ListIssueComments returns all top-level comments on the given thread.
	ListIssueComments(ctx context.Context, repo string, prNumber int) ([]IssueComment, error)

	// CreateIssueComment creates a new top-level comment on the thread.
	CreateIssueComment(ctx context.Context, repo string, prNumber int, body string) error

	// EditIssueComment replaces the body of an existing comment in place.
	EditIssueComment(ctx context.Context, repo string, commentID int64, body string) error
}
