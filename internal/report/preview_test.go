package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommentHTML(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		contains    []string
		notContains []string
	}{
		{
			name:     "empty input",
			src:      "",
			contains: nil,
		},
		{
			name:     "heading and fence",
			src:      "## Checkpatch issues\n\n```\nWARNING: long line\n```\n",
			contains: []string{"<h2", "Checkpatch issues", "<code>", "WARNING: long line"},
		},
		{
			name:     "gfm list",
			src:      "* foo.c missing license.\n* bar.c unknown SPDX.\n",
			contains: []string{"<li>", "foo.c missing license."},
		},
		{
			name:        "script stripped",
			src:         "hello <script>alert(1)</script> world",
			contains:    []string{"hello", "world"},
			notContains: []string{"<script>", "alert(1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderCommentHTML(tt.src)
			if tt.src == "" {
				assert.Empty(t, out)
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, bad := range tt.notContains {
				assert.NotContains(t, out, bad)
			}
		})
	}
}

func TestWritePreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.html")
	require.NoError(t, WritePreview("## License/Copyright issues\n\n* foo.c missing license.\n", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	doc := string(data)
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "License/Copyright issues")
	assert.Contains(t, doc, "<li>")
}
