package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/content"
	"inkwell/internal/document/memdoc"
)

type docKind int

const (
	docHTML docKind = iota
	docMarkdown
)

func kindOf(path string) (docKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return docHTML, nil
	case ".md", ".markdown":
		return docMarkdown, nil
	}
	return 0, unsupportedFileError{path: path}
}

// readDocument returns path's content as HTML. Markdown goes through
// goldmark; the engine's loader drops whatever the link gate refuses.
func readDocument(path string) (string, error) {
	kind, err := kindOf(path)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if kind == docMarkdown {
		html, err := content.MarkdownToHTML(string(b))
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", filepath.Base(path), err)
		}
		return html, nil
	}
	return string(b), nil
}

// loadDocument fills doc from path. An empty path, or a file that does not
// exist yet when allowNew is set, starts from the default content.
func loadDocument(doc *memdoc.Doc, path string, allowNew bool) error {
	if path == "" {
		return doc.Load(memdoc.DefaultContent)
	}
	src, err := readDocument(path)
	if err != nil {
		if allowNew && errors.Is(err, os.ErrNotExist) {
			return doc.Load(memdoc.DefaultContent)
		}
		return err
	}
	return doc.Load(src)
}
