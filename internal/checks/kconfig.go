package checks

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// kconfigWarnings is the helper program run under the tree's own kconfiglib.
// KCONFIG_STRICT makes kconfiglib warn on every reference to an undefined
// symbol; the warnings are printed one per line separated by blank lines.
const kconfigWarnings = `
import kconfiglib
for warning in kconfiglib.Kconfig().warnings:
    print(warning)
    print()
`

// runKconfig parses the entire Kconfig tree rooted at the base path and
// fails on references to undefined symbols. Without a base path the check is
// not applicable.
func runKconfig(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "Kconfig"

	if p.BasePath == "" {
		return skipped(name, "Not a Zephyr tree"), nil
	}

	kconfigDir := filepath.Join(p.BasePath, "scripts", "kconfig")
	if _, err := os.Stat(kconfigDir); err != nil {
		return errored(name, "can't find Kconfig at "+kconfigDir), nil
	}

	cmd := exec.CommandContext(ctx, "python3", "-c", kconfigWarnings)
	cmd.Dir = p.BasePath
	// Parse the whole tree so every symbol is visible, and put the tree's
	// own kconfiglib first on the path so no local version shadows it.
	cmd.Env = append(os.Environ(),
		"PYTHONPATH="+kconfigDir,
		"srctree="+p.BasePath,
		"SOC_DIR=soc/",
		"BOARD_DIR=boards/*/*",
		"ARCH=*",
		"KCONFIG_STRICT=y",
	)

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return skipped(name, "python3 not installed"), nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errored(name, "Kconfig parsing failed: "+firstLine(exitErr.Stderr)), nil
		}
		return model.CheckResult{}, err
	}

	var undefRefs []string
	for _, warning := range strings.Split(string(out), "\n\n") {
		if strings.Contains(warning, "undefined symbol") {
			undefRefs = append(undefRefs, strings.TrimSpace(warning))
		}
	}

	if len(undefRefs) > 0 {
		// One consolidated failure body; multiple <failure> elements render
		// poorly in most JUnit viewers.
		return failed(name, "undefined Kconfig symbols", strings.Join(undefRefs, "\n\n\n")), nil
	}
	return passed(name), nil
}
