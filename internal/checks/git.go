package checks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// git runs a git subcommand in dir and returns its stdout.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// revList enumerates the SHAs covered by the revision range. A single
// revision yields exactly one SHA; the "a..b" form yields every commit in
// the span.
func revList(ctx context.Context, dir string, rng model.RevisionRange) ([]string, error) {
	maxCount := "1"
	if strings.Contains(rng.String(), ".") {
		maxCount = "-1"
	}

	out, err := git(ctx, dir, "rev-list", "--max-count="+maxCount, rng.String())
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}
