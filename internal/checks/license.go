package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// scancodePath is where the CI image installs the scancode-toolkit. The
// check is optional: a tree without the toolkit skips instead of failing.
const scancodePath = "/opt/scancode-toolkit/scancode"

// scancodeFile is the slice of scancode's per-file JSON output the check
// actually inspects.
type scancodeFile struct {
	Path                string             `json:"path"`
	Type                string             `json:"type"`
	IsScript            bool               `json:"is_script"`
	IsSource            bool               `json:"is_source"`
	ProgrammingLanguage string             `json:"programming_language"`
	Extension           string             `json:"extension"`
	Licenses            []scancodeLicense  `json:"licenses"`
	Copyrights          []json.RawMessage  `json:"copyrights"`
}

type scancodeLicense struct {
	Key      string `json:"key"`
	Category string `json:"category"`
}

type scancodeOutput struct {
	Files []scancodeFile `json:"files"`
}

// runLicense scans files added in the revision range with scancode-toolkit
// and reports anything that is not permissively (apache-2.0) licensed or is
// missing license or copyright information.
func runLicense(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "License"

	if _, err := os.Stat(scancodePath); err != nil {
		return skipped(name, "scancode-toolkit not installed"), nil
	}

	newFiles, err := git(ctx, p.RepoDir, "diff", "--name-only", "--diff-filter=A", p.Range.String())
	if err != nil {
		return model.CheckResult{}, err
	}
	files := strings.Fields(newFiles)
	if len(files) == 0 {
		return passed(name), nil
	}

	// Scan a copy of just the added files; scanning the whole tree would
	// flag preexisting issues the range did not introduce.
	scanDir, err := os.MkdirTemp("", "scancode-files-")
	if err != nil {
		return model.CheckResult{}, fmt.Errorf("create scan dir: %w", err)
	}
	defer os.RemoveAll(scanDir)

	for _, f := range files {
		if err := copyFile(filepath.Join(p.RepoDir, f), filepath.Join(scanDir, f)); err != nil {
			return model.CheckResult{}, fmt.Errorf("stage %s for scan: %w", f, err)
		}
	}

	resultPath := filepath.Join(scanDir, "scancode.json")
	cmd := exec.CommandContext(ctx, scancodePath,
		"--verbose", "--copyright", "--license", "--license-diag", "--info",
		"--classify", "--summary", "--json", resultPath, scanDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errored(name, fmt.Sprintf("scancode invocation failed: %v: %s", err, firstLine(out))), nil
	}

	raw, err := os.ReadFile(resultPath)
	if err != nil {
		return model.CheckResult{}, fmt.Errorf("read scancode results: %w", err)
	}

	var results scancodeOutput
	if err := json.Unmarshal(raw, &results); err != nil {
		return errored(name, "scancode produced unparseable output: "+err.Error()), nil
	}

	report := buildLicenseReport(results.Files, scanDir+"/")
	if report != "" {
		return failed(name, "License/Copyright issues", report), nil
	}
	return passed(name), nil
}

// buildLicenseReport turns scancode's per-file findings into the report text
// shown to contributors. prefix is stripped from paths so the report names
// files relative to the repository root.
func buildLicenseReport(files []scancodeFile, prefix string) string {
	var b strings.Builder
	for _, f := range files {
		if f.Type == "directory" {
			continue
		}

		path := strings.TrimPrefix(f.Path, prefix)
		scannable := (f.IsScript || f.IsSource) &&
			f.ProgrammingLanguage != "CMake" && f.Extension != ".yaml"
		if scannable {
			if len(f.Licenses) == 0 {
				fmt.Fprintf(&b, "* %s missing license.\n", path)
			}
			for _, lic := range f.Licenses {
				if lic.Key != "apache-2.0" {
					fmt.Fprintf(&b, "* %s is not apache-2.0 licensed: %s\n", path, lic.Key)
				}
				if lic.Category != "Permissive" {
					fmt.Fprintf(&b, "* %s has non-permissive license: %s\n", path, lic.Key)
				}
				if lic.Key == "unknown-spdx" {
					fmt.Fprintf(&b, "* %s has unknown SPDX: %s\n", path, lic.Key)
				}
			}
			if len(f.Copyrights) == 0 {
				fmt.Fprintf(&b, "* %s missing copyright.\n", path)
			}
		}
	}
	return b.String()
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
