// Package content converts documents in and out of the editor: markdown is
// rendered to HTML on the way in and exported HTML can be sanitized on the
// way out.
package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	// Raw HTML stays disabled; no html.WithUnsafe().
)

// MarkdownToHTML renders markdown for loading into the editor.
func MarkdownToHTML(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return b.String(), nil
}

var exportPolicy = newExportPolicy()

func newExportPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").OnElements("a")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("p", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("mark", "u")
	// The editor sets rel itself; do not let bluemonday rewrite it.
	p.RequireNoFollowOnLinks(false)
	return p
}

// Sanitize strips anything exported HTML should not carry while keeping the
// editor's own presentation attributes and embedded data: images.
func Sanitize(html string) string {
	return exportPolicy.Sanitize(html)
}
