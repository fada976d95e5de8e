package checks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// docsWarningFile is produced by the documentation build step that runs
// before this tool; the check only inspects it.
const docsWarningFile = "doc.warnings"

// runDocumentation fails when the documentation build left any warnings
// behind. A missing or empty warnings file means a clean build.
func runDocumentation(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "Documentation"

	path := filepath.Join(p.RepoDir, docsWarningFile)
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return passed(name), nil
	}

	log, err := os.ReadFile(path)
	if err != nil {
		return model.CheckResult{}, err
	}

	return failed(name, "documentation issues", string(log)), nil
}
