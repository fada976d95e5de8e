package application

import (
	"strings"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// CommentMarker identifies a synchronizer-authored comment. The publish path
// edits a comment containing it in place instead of creating another one.
const CommentMarker = "Found the following issues, please fix and resubmit"

// BuildComment renders the consolidated comment body aggregating every
// non-passed, non-skipped result, in suite order. defs supplies the Prose
// flag per check: prose output (linter prose, license reports) is included
// as-is, anything else is fenced as a code block. Returns the body and the
// number of results included; an empty issue set yields count zero and the
// body must not be posted.
func BuildComment(suite *model.Suite, defs map[string]model.CheckDefinition) (string, int) {
	var b strings.Builder
	b.WriteString(CommentMarker)
	b.WriteString(":\n\n")

	count := 0
	for _, res := range suite.Results() {
		if !res.IsIssue() {
			continue
		}
		count++

		b.WriteString("## ")
		b.WriteString(res.Message)
		b.WriteString("\n\n")

		fenced := !defs[res.Name].Prose
		if fenced {
			b.WriteString("```\n")
		}
		b.WriteString(res.Detail)
		b.WriteString("\n")
		if fenced {
			b.WriteString("```\n")
		}
	}

	return b.String(), count
}
