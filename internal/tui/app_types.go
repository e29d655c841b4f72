package tui

import (
	"time"

	"inkwell/internal/document"
	"inkwell/internal/document/memdoc"
	"inkwell/internal/ingest"
)

// Editor is what the editing surface needs from the engine beyond
// document.Engine: raw editing and a renderable view.
type Editor interface {
	document.Engine
	InsertText(text string) bool
	Paste(text string) bool
	SplitBlock() bool
	Backspace() bool
	Delete() bool
	Move(dir memdoc.Direction, extend bool)
	SelectAll()
	View() []memdoc.BlockView
	Markdown() string
}

var _ Editor = (*memdoc.Doc)(nil)

type focusArea int

const (
	focusDocument focusArea = iota
	focusToolbar
)

func (f focusArea) String() string {
	if f == focusToolbar {
		return "toolbar"
	}
	return "document"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalLinkPrompt
	modalAlert
	modalPickImage
)

type previewMode int

const (
	previewHTML previewMode = iota
	previewRendered
)

func (p previewMode) String() string {
	if p == previewRendered {
		return "rendered"
	}
	return "html"
}

func parsePreviewMode(s string) previewMode {
	if s == "rendered" {
		return previewRendered
	}
	return previewHTML
}

// imageEncodedMsg carries a finished encode back onto the UI loop.
type imageEncodedMsg struct {
	name string
	res  ingest.Result
}

type minibufferTickMsg struct{}

const minibufferAutoClearAfter = 4 * time.Second
