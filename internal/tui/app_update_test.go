package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/document/memdoc"
	"inkwell/internal/linksafety"
	"inkwell/internal/toolbar"
)

func newTestModel(t *testing.T, html string) appModel {
	t.Helper()
	doc := memdoc.New(memdoc.Options{Gate: linksafety.DefaultGate()})
	if err := doc.Load(html); err != nil {
		t.Fatalf("load: %v", err)
	}
	m := newAppModel(Options{Editor: doc, Gate: linksafety.DefaultGate()})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mm.(appModel)
}

func send(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(msg)
	return mm.(appModel), cmd
}

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestUpdate_MinibufferTick_AutoClears(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")

	(&m).showMinibuffer("Hello")
	m.minibufferSetAt = time.Now().Add(-minibufferAutoClearAfter - 100*time.Millisecond)

	m, _ = send(t, m, minibufferTickMsg{})
	if got := m.minibufferText; got != "" {
		t.Fatalf("expected minibuffer text to clear, got %q", got)
	}
}

func TestUpdate_MinibufferTick_DoesNotClearRecent(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")

	(&m).showMinibuffer("Hello")
	m.minibufferSetAt = time.Now()

	m, _ = send(t, m, minibufferTickMsg{})
	if got := m.minibufferText; got == "" {
		t.Fatalf("expected minibuffer text to remain set")
	}
}

func TestUpdate_TypingInsertsText(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m = typeText(t, m, "!")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = typeText(t, m, "x")

	if got, want := m.editor.HTML(), "<p>Hello! x</p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
	if !strings.Contains(m.previewCache, "Hello! x") {
		t.Fatalf("preview not refreshed: %q", m.previewCache)
	}
}

func TestUpdate_ShortcutTogglesBold(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m.editor.SelectAll()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	if got, want := m.editor.HTML(), "<p><strong>Hello</strong></p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
	a, _ := m.toolbar.Action("bold")
	if a.State() != toolbar.On {
		t.Fatalf("bold state: got %s want on", a.State())
	}
}

func TestUpdate_ToolbarNavigationAndActivate(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m.editor.SelectAll()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusToolbar {
		t.Fatalf("expected toolbar focus, got %s", m.focus)
	}
	for range 4 {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	a, ok := m.focusedAction()
	if !ok || a.ID != "italic" {
		t.Fatalf("focused action: got %q", a.ID)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got, want := m.editor.HTML(), "<p><em>Hello</em></p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusDocument {
		t.Fatalf("expected document focus after esc, got %s", m.focus)
	}
}

func TestUpdate_LinkWithEmptySelectionShowsAlert(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.modal.kind != modalAlert {
		t.Fatalf("expected alert modal, got %v", m.modal.kind)
	}
	if m.modal.alertText != toolbar.MsgSelectText {
		t.Fatalf("alert text: got %q", m.modal.alertText)
	}
	if !strings.Contains(m.View(), toolbar.MsgSelectText) {
		t.Fatalf("expected alert in view")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal.kind != modalNone {
		t.Fatalf("expected alert to close, got %v", m.modal.kind)
	}
}

func TestUpdate_LinkPromptAppliesLink(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m.editor.SelectAll()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.modal.kind != modalLinkPrompt {
		t.Fatalf("expected link prompt, got %v", m.modal.kind)
	}
	m = typeText(t, m, "https://example.com")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal.kind != modalNone {
		t.Fatalf("expected prompt to close, got %v", m.modal.kind)
	}
	if got := m.editor.HTML(); !strings.Contains(got, `href="https://example.com"`) {
		t.Fatalf("expected link in %q", got)
	}
}

func TestUpdate_LinkPromptRejectsUnsafeURL(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m.editor.SelectAll()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = typeText(t, m, "javascript:alert(1)")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal.kind != modalAlert {
		t.Fatalf("expected alert, got %v", m.modal.kind)
	}
	if strings.Contains(m.editor.HTML(), "<a ") {
		t.Fatalf("unsafe link applied: %q", m.editor.HTML())
	}
}

func TestUpdate_LinkPromptEscCancels(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	m.editor.SelectAll()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = typeText(t, m, "https://example.com")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modal.kind != modalNone {
		t.Fatalf("expected prompt to close, got %v", m.modal.kind)
	}
	if got, want := m.editor.HTML(), "<p>Hello</p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
}

func TestUpdate_TextPasteIsInserted(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" world"), Paste: true})
	if got, want := m.editor.HTML(), "<p>Hello world</p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
}

func TestUpdate_DroppedImageIsEmbeddedNotTyped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := newTestModel(t, "<p>Hello</p>")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	if got, want := m.editor.HTML(), "<p>Hello</p>"; got != want {
		t.Fatalf("drop must not insert text: got %q", got)
	}

	var encoded *imageEncodedMsg
	for _, msg := range runCmd(cmd) {
		if e, ok := msg.(imageEncodedMsg); ok {
			encoded = &e
		}
	}
	if encoded == nil {
		t.Fatalf("expected an image encode to be scheduled")
	}
	m, _ = send(t, m, *encoded)

	if got := m.editor.HTML(); !strings.Contains(got, `src="data:image/png;base64,aGVsbG8="`) {
		t.Fatalf("expected embedded image in %q", got)
	}
	if !strings.Contains(m.minibufferText, "dot.png") {
		t.Fatalf("minibuffer: got %q", m.minibufferText)
	}
}

func TestUpdate_DroppedNonImageIsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := newTestModel(t, "<p>Hello</p>")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(imageEncodedMsg); ok {
			t.Fatalf("non-image must not be encoded")
		}
	}
	if got, want := m.editor.HTML(), "<p>Hello</p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
}

func TestUpdate_ImageShortcutOpensPicker(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.modal.kind != modalPickImage {
		t.Fatalf("expected picker, got %v", m.modal.kind)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal.kind != modalNone {
		t.Fatalf("expected picker to close, got %v", m.modal.kind)
	}
	if got, want := m.editor.HTML(), "<p>Hello</p>"; got != want {
		t.Fatalf("html: got %q want %q", got, want)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := newTestModel(t, "<p>Hello</p>")
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})

	quit := false
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Fatalf("expected quit")
	}
}

func TestUpdate_TogglePreview(t *testing.T) {
	m := newTestModel(t, "<h1>Title</h1>")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.preview != previewRendered {
		t.Fatalf("expected rendered preview")
	}
	if got, want := m.previewCache, "# Title"; got != want {
		t.Fatalf("preview cache: got %q want %q", got, want)
	}
}

func TestView_FitsScreen(t *testing.T) {
	m := newTestModel(t, "<h1>Title</h1><ul><li><p>one</p></li></ul><hr><p>end</p>")
	v := m.View()
	lines := strings.Split(v, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(v, "Title") {
		t.Fatalf("expected document in view")
	}
}

func TestAbbreviateDataURIs(t *testing.T) {
	payload := strings.Repeat("QUJD", 40)
	in := `<img src="data:image/png;base64,` + payload + `">`
	got := abbreviateDataURIs(in)
	if strings.Contains(got, payload) {
		t.Fatalf("payload not abbreviated: %q", got)
	}
	if !strings.HasPrefix(got, `<img src="data:image/png;base64,QUJDQUJDQUJDQUJD…(`) {
		t.Fatalf("unexpected abbreviation: %q", got)
	}

	short := `<img src="data:image/png;base64,aGVsbG8=">`
	if got := abbreviateDataURIs(short); got != short {
		t.Fatalf("short payload changed: %q", got)
	}
}
