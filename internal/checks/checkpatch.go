package checks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// checkpatch exits nonzero for both real findings and internal problems;
// this line only appears when it ran to completion and counted errors.
var checkpatchErrors = regexp.MustCompile(`([1-9][0-9]*) errors,`)

// runCheckpatch diffs the revision range and pipes it through the tree's
// checkpatch.pl in mailback mode.
func runCheckpatch(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "checkpatch"

	script := filepath.Join(p.RepoDir, "scripts", "checkpatch.pl")
	if _, err := os.Stat(script); err != nil {
		return skipped(name, "checkpatch script not found"), nil
	}

	diff, err := git(ctx, p.RepoDir, "diff", p.Range.String())
	if err != nil {
		return model.CheckResult{}, err
	}

	cmd := exec.CommandContext(ctx, script, "--mailback", "--no-tree", "-")
	cmd.Dir = p.RepoDir
	cmd.Stdin = bytes.NewReader([]byte(diff))
	out, err := cmd.CombinedOutput()
	if err == nil {
		return passed(name), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if checkpatchErrors.Match(out) {
			return failed(name, "Checkpatch issues", string(out)), nil
		}
		// Nonzero exit without an error count: checkpatch itself broke.
		return errored(name, "checkpatch did not complete: "+exitErr.String()), nil
	}
	return model.CheckResult{}, err
}
