package checks

import (
	"context"
	"errors"
	"os/exec"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// runGitlint lints every commit message in the range with gitlint, which
// exits nonzero and prints its findings to stderr when any rule is violated.
func runGitlint(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "Gitlint"

	cmd := exec.CommandContext(ctx, "gitlint", "--commits", p.Range.String())
	cmd.Dir = p.RepoDir
	out, err := cmd.CombinedOutput()
	if err == nil {
		return passed(name), nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return skipped(name, "gitlint not installed"), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if len(out) > 0 {
			return failed(name, "commit message syntax issues", string(out)), nil
		}
		return errored(name, "gitlint exited without output: "+exitErr.String()), nil
	}
	return model.CheckResult{}, err
}
