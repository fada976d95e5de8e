package checks

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

var (
	commitLine = regexp.MustCompile(`^commit\s+(\S+)`)
	authorLine = regexp.MustCompile(`^Author:\s+(.*)`)
	signedLine = regexp.MustCompile(`(?i)signed-off-by:\s+(.*)`)
)

// runIdentity verifies for every commit in the range that the author email
// matches one of the Signed-off-by entries and that the author follows the
// "First Last <email>" form.
func runIdentity(ctx context.Context, p model.RunParams) (model.CheckResult, error) {
	const name = "Identity/Emails"

	shas, err := revList(ctx, p.RepoDir, p.Range)
	if err != nil {
		return model.CheckResult{}, err
	}

	var issues []string
	for _, sha := range shas {
		commit, err := git(ctx, p.RepoDir, "log", "--decorate=short", "-n", "1", sha)
		if err != nil {
			return model.CheckResult{}, err
		}
		issues = append(issues, identityIssues(commit)...)
	}

	if len(issues) > 0 {
		return failed(name, "identity/email issues", strings.Join(issues, "\n")), nil
	}
	return passed(name), nil
}

// identityIssues inspects one commit's log output and returns the identity
// problems found in it, empty when the commit is clean.
func identityIssues(commitLog string) []string {
	var (
		sha    string
		author string
		signed []string
	)

	for _, line := range strings.Split(commitLog, "\n") {
		if m := commitLine.FindStringSubmatch(line); m != nil {
			sha = m[1]
		}
		if m := authorLine.FindStringSubmatch(line); m != nil {
			author = m[1]
		}
		if m := signedLine.FindStringSubmatch(line); m != nil {
			signed = append(signed, strings.TrimSpace(m[1]))
		}
	}

	var issues []string

	matched := false
	for _, s := range signed {
		if s == author {
			matched = true
			break
		}
	}
	if !matched {
		issues = append(issues, fmt.Sprintf(
			"%s: author email (%s) needs to match one of the signed-off-by entries.", sha, author))
	}

	addr, err := mail.ParseAddress(author)
	if err != nil || len(strings.Fields(addr.Name)) < 2 {
		issues = append(issues, fmt.Sprintf(
			"%s: author email (%s) does not follow the syntax: First Last <email>.", sha, author))
	}

	return issues
}
