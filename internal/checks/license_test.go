package checks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLicenseReport(t *testing.T) {
	tests := []struct {
		name  string
		files []scancodeFile
		want  []string // Substrings the report must contain; empty means clean.
	}{
		{
			name: "apache licensed source with copyright is clean",
			files: []scancodeFile{
				{
					Path:     "scan/drivers/foo.c",
					Type:     "file",
					IsSource: true,
					Licenses: []scancodeLicense{{Key: "apache-2.0", Category: "Permissive"}},
					Copyrights: []json.RawMessage{
						json.RawMessage(`{"value":"Copyright (c) 2026 Example"}`),
					},
				},
			},
		},
		{
			name: "missing license and copyright",
			files: []scancodeFile{
				{Path: "scan/src/bar.c", Type: "file", IsSource: true},
			},
			want: []string{
				"* src/bar.c missing license.",
				"* src/bar.c missing copyright.",
			},
		},
		{
			name: "gpl source flagged twice",
			files: []scancodeFile{
				{
					Path:     "scan/src/baz.c",
					Type:     "file",
					IsSource: true,
					Licenses: []scancodeLicense{{Key: "gpl-2.0", Category: "Copyleft"}},
					Copyrights: []json.RawMessage{
						json.RawMessage(`{"value":"Copyright (c) 2026 Example"}`),
					},
				},
			},
			want: []string{
				"* src/baz.c is not apache-2.0 licensed: gpl-2.0",
				"* src/baz.c has non-permissive license: gpl-2.0",
			},
		},
		{
			name: "unknown spdx flagged",
			files: []scancodeFile{
				{
					Path:     "scan/src/qux.sh",
					Type:     "file",
					IsScript: true,
					Licenses: []scancodeLicense{{Key: "unknown-spdx", Category: "Unstated"}},
					Copyrights: []json.RawMessage{
						json.RawMessage(`{"value":"Copyright (c) 2026 Example"}`),
					},
				},
			},
			want: []string{
				"* src/qux.sh has unknown SPDX: unknown-spdx",
			},
		},
		{
			name: "cmake and yaml are not scanned",
			files: []scancodeFile{
				{Path: "scan/CMakeLists.txt", Type: "file", IsScript: true, ProgrammingLanguage: "CMake"},
				{Path: "scan/boards/foo.yaml", Type: "file", IsSource: true, Extension: ".yaml"},
			},
		},
		{
			name: "directories are ignored",
			files: []scancodeFile{
				{Path: "scan/src", Type: "directory"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := buildLicenseReport(tt.files, "scan/")
			if len(tt.want) == 0 {
				assert.Empty(t, report)
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, report, w)
			}
		})
	}
}
