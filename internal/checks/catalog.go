// Package checks contains the compliance check bodies: thin wrappers around
// external tools (checkpatch, gitlint, scancode, kconfiglib) that map each
// tool's behavior into the four-valued result status at a single boundary.
package checks

import "github.com/ewatkins/checkmate/internal/domain/model"

const guidelinesDoc = "https://docs.zephyrproject.org/latest/contribute/contribute_guidelines.html"

// Catalog returns every check definition in registration order. The order is
// a literal list, not an artifact of declaration order, and is the execution
// and reporting order for unfiltered runs.
func Catalog() []model.CheckDefinition {
	return []model.CheckDefinition{
		{
			Name:   "checkpatch",
			DocURL: guidelinesDoc + "#coding-style",
			Run:    runCheckpatch,
		},
		{
			Name:   "Kconfig",
			DocURL: "https://docs.zephyrproject.org/latest/application/kconfig-tips.html",
			Run:    runKconfig,
		},
		{
			Name:   "Documentation",
			DocURL: "https://docs.zephyrproject.org/latest/contribute/doc-guidelines.html",
			Run:    runDocumentation,
		},
		{
			Name:   "Gitlint",
			DocURL: guidelinesDoc + "#commit-guidelines",
			Prose:  true,
			Run:    runGitlint,
		},
		{
			Name:   "License",
			DocURL: guidelinesDoc + "#licensing",
			Prose:  true,
			Run:    runLicense,
		},
		{
			Name:   "Identity/Emails",
			DocURL: guidelinesDoc + "#commit-guidelines",
			Prose:  true,
			Run:    runIdentity,
		},
	}
}

// Result constructors. Check bodies use these so the CheckResult invariants
// (passed means empty message, skipped carries a reason) hold by construction.

func passed(name string) model.CheckResult {
	return model.CheckResult{Name: name, Status: model.StatusPassed}
}

func failed(name, message, detail string) model.CheckResult {
	return model.CheckResult{Name: name, Status: model.StatusFailed, Message: message, Detail: detail}
}

func errored(name, message string) model.CheckResult {
	return model.CheckResult{Name: name, Status: model.StatusError, Message: message}
}

func skipped(name, reason string) model.CheckResult {
	return model.CheckResult{Name: name, Status: model.StatusSkipped, Message: reason}
}
