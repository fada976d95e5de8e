package report

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/natefinch/atomic"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()
}

// RenderCommentHTML converts the consolidated comment's markdown body to
// sanitized HTML. Returns empty string for empty input.
func RenderCommentHTML(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return htmlSanitizer.Sanitize(buf.String())
}

// WritePreview renders the comment body and writes it to path as a
// standalone HTML document, for local inspection before publishing.
func WritePreview(body, path string) error {
	doc := fmt.Sprintf(
		"<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>compliance comment preview</title></head>\n<body>\n%s</body>\n</html>\n",
		RenderCommentHTML(body),
	)

	if err := atomic.WriteFile(path, bytes.NewReader([]byte(doc))); err != nil {
		return fmt.Errorf("write preview %s: %w", path, err)
	}
	return nil
}
