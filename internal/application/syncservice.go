package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
	"github.com/ewatkins/checkmate/internal/domain/port/driven"
)

// Status descriptions shown next to each commit status marker.
const (
	descPending = "Verification in progress"
	descPassed  = "Verifications passed"
	descFailed  = "Verification failed"
)

// SyncService mirrors check outcomes to the review host as per-check commit
// statuses plus one consolidated, edited-in-place issue comment. It is the
// sole mutation path for the revision's external state.
type SyncService struct {
	host driven.ReviewHost
	repo string // "owner/name"
}

// NewSyncService creates a SyncService for the given repository. host must
// be non-nil; the caller decides the no-credential no-op before wiring one.
func NewSyncService(host driven.ReviewHost, repo string) *SyncService {
	return &SyncService{host: host, repo: repo}
}

// SetPending creates a pending status for every known check so the external
// observer always sees an initial state before the run starts.
func (s *SyncService) SetPending(ctx context.Context, defs []model.CheckDefinition, sha string) error {
	for _, def := range defs {
		slog.Info("creating pending status", "check", def.Name, "sha", sha)
		status := driven.CommitStatus{
			State:       driven.StatePending,
			TargetURL:   def.DocURL,
			Description: descPending,
			Context:     def.Name,
		}
		if err := s.host.CreateCommitStatus(ctx, s.repo, sha, status); err != nil {
			return fmt.Errorf("set pending status for %s: %w", def.Name, err)
		}
	}
	return nil
}

// Publish mirrors every result to the host and maintains the consolidated
// comment. Each result gets a commit status: success for passed and skipped,
// failure otherwise. The comment aggregates the non-passed, non-skipped
// results; when a prior synchronizer comment exists on the thread it is
// edited in place, otherwise exactly one comment is created. Zero issues
// leave any existing comment untouched. Returns the issue count, which is
// the run's externally reported error count on this path.
func (s *SyncService) Publish(ctx context.Context, suite *model.Suite, defs map[string]model.CheckDefinition, sha string, prNumber int) (int, error) {
	slog.Info("publishing results", "repo", s.repo, "sha", sha, "pr", prNumber)

	for _, res := range suite.Results() {
		state := driven.StateSuccess
		desc := descPassed
		if res.IsIssue() {
			state = driven.StateFailure
			desc = descFailed
		}

		status := driven.CommitStatus{
			State:       state,
			TargetURL:   defs[res.Name].DocURL,
			Description: desc,
			Context:     res.Name,
		}
		if err := s.host.CreateCommitStatus(ctx, s.repo, sha, status); err != nil {
			return 0, fmt.Errorf("set status for %s: %w", res.Name, err)
		}
	}

	body, count := BuildComment(suite, defs)
	if count == 0 || prNumber <= 0 {
		return count, nil
	}

	comments, err := s.host.ListIssueComments(ctx, s.repo, prNumber)
	if err != nil {
		return count, fmt.Errorf("list comments on #%d: %w", prNumber, err)
	}

	for _, c := range comments {
		if strings.Contains(c.Body, CommentMarker) {
			if err := s.host.EditIssueComment(ctx, s.repo, c.ID, body); err != nil {
				return count, fmt.Errorf("edit comment %d: %w", c.ID, err)
			}
			return count, nil
		}
	}

	if err := s.host.CreateIssueComment(ctx, s.repo, prNumber, body); err != nil {
		return count, fmt.Errorf("create comment on #%d: %w", prNumber, err)
	}
	return count, nil
}
