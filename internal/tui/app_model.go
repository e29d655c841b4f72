package tui

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"inkwell/internal/document"
	"inkwell/internal/ingest"
	"inkwell/internal/toolbar"
)

// Options configure the editor.
type Options struct {
	Editor Editor
	Gate   document.LinkGate
	// Preview is "html" or "rendered".
	Preview string
	// Theme is passed to the markdown renderer ("light", "dark", "auto").
	Theme string
}

type appModel struct {
	editor   Editor
	toolbar  *toolbar.Controller
	pipeline *ingest.Pipeline
	modal    *modalState
	keys     keyMap
	help     help.Model

	width  int
	height int

	focus      focusArea
	toolbarIdx int

	preview      previewMode
	previewArea  textarea.Model
	previewCache string
	theme        string

	minibufferText  string
	minibufferSetAt time.Time
}

const (
	toolbarLines    = 1
	statusLines     = 1
	dividerLines    = 1
	minPreviewLines = 3
)

func newAppModel(opts Options) appModel {
	s := newModalState()
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Blur()

	m := appModel{
		editor:      opts.Editor,
		toolbar:     toolbar.NewController(opts.Editor, opts.Gate, s, s),
		pipeline:    ingest.NewPipeline(opts.Editor, ingest.WithLogger(slog.Default())),
		modal:       s,
		keys:        defaultKeyMap(),
		help:        help.New(),
		preview:     parsePreviewMode(opts.Preview),
		previewArea: ta,
		theme:       opts.Theme,
	}
	m.syncPreview()
	return m
}

func (m appModel) Init() tea.Cmd { return tickMinibuffer() }

func tickMinibuffer() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = strings.TrimSpace(text)
	m.minibufferSetAt = time.Now()
}

func (m *appModel) layout() (docH, previewH int) {
	avail := m.height - toolbarLines - statusLines - 2*dividerLines
	previewH = max(avail/3, minPreviewLines)
	docH = max(avail-previewH, 1)
	return docH, previewH
}

func (m *appModel) resize() {
	_, previewH := m.layout()
	m.previewArea.SetWidth(max(m.width, 10))
	m.previewArea.SetHeight(max(previewH, 1))
	m.modal.pickerHeight = imagePickerHeight(m.height)
	m.modal.input.Width = max(modalBodyWidth(m.width)-2, 8)
	m.previewCache = ""
	m.syncPreview()
}

// syncPreview refreshes the read-only preview after an edit.
func (m *appModel) syncPreview() {
	var text string
	switch m.preview {
	case previewRendered:
		text = m.editor.Markdown()
	default:
		text = m.editor.HTML()
	}
	if text == m.previewCache {
		return
	}
	m.previewCache = text
	if m.preview == previewHTML {
		m.previewArea.SetValue(abbreviateDataURIs(text))
	}
}

var dataURIPayload = regexp.MustCompile(`(data:[a-zA-Z0-9.+/-]+;base64,)([A-Za-z0-9+/=]{48,})`)

// abbreviateDataURIs shortens embedded payloads in the HTML preview; the
// full document is still what gets copied or printed.
func abbreviateDataURIs(html string) string {
	return dataURIPayload.ReplaceAllStringFunc(html, func(s string) string {
		sub := dataURIPayload.FindStringSubmatch(s)
		payload := sub[2]
		return fmt.Sprintf("%s%s…(%s)", sub[1], payload[:16], humanize.Bytes(uint64(len(payload)*3/4)))
	})
}
