package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

func TestBuildComment_EmptySuite(t *testing.T) {
	body, count := BuildComment(model.NewSuite(), testDefs())
	assert.Equal(t, 0, count)
	assert.True(t, strings.HasPrefix(body, CommentMarker))
}

func TestBuildComment_PassedAndSkippedExcluded(t *testing.T) {
	suite := buildSuite(t,
		model.CheckResult{Name: "checkpatch", Status: model.StatusPassed},
		model.CheckResult{Name: "Kconfig", Status: model.StatusSkipped, Message: "Not a Zephyr tree"},
		model.CheckResult{Name: "Gitlint", Status: model.StatusFailed, Message: "commit message syntax issues", Detail: "title too long"},
	)

	body, count := BuildComment(suite, testDefs())
	assert.Equal(t, 1, count)
	assert.NotContains(t, body, "Not a Zephyr tree")
	assert.Contains(t, body, "## commit message syntax issues")
}

func TestBuildComment_FencingFollowsProseFlag(t *testing.T) {
	suite := buildSuite(t,
		model.CheckResult{Name: "checkpatch", Status: model.StatusFailed, Message: "Checkpatch issues", Detail: "WARNING: line over 100 chars"},
		model.CheckResult{Name: "License", Status: model.StatusFailed, Message: "License/Copyright issues", Detail: "* foo.c missing license."},
	)

	body, count := BuildComment(suite, testDefs())
	require.Equal(t, 2, count)

	// checkpatch output is tool text and gets a code fence; the license
	// report is prose markdown and must not be fenced.
	assert.Contains(t, body, "```\nWARNING: line over 100 chars\n```")
	assert.NotContains(t, body, "```\n* foo.c missing license.")
	assert.Contains(t, body, "* foo.c missing license.")
}

func TestBuildComment_PreservesSuiteOrder(t *testing.T) {
	suite := buildSuite(t,
		model.CheckResult{Name: "Gitlint", Status: model.StatusFailed, Message: "first", Detail: "a"},
		model.CheckResult{Name: "checkpatch", Status: model.StatusError, Message: "second", Detail: "b"},
	)

	body, count := BuildComment(suite, testDefs())
	require.Equal(t, 2, count)
	assert.Less(t, strings.Index(body, "## first"), strings.Index(body, "## second"))
}
