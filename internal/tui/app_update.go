package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/document/memdoc"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case minibufferTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, tickMinibuffer()

	case imageEncodedMsg:
		m.completeImage(msg)
		m.syncPreview()
		return m, nil

	case tea.KeyMsg:
		cmd := m.updateKey(msg)
		m.syncPreview()
		return m, tea.Batch(cmd, m.modal.drain())
	}

	// Anything else (filepicker directory reads, cursor blinks) belongs to
	// whichever modal is open.
	switch m.modal.kind {
	case modalPickImage:
		return m, m.updateImagePicker(msg)
	case modalLinkPrompt:
		var cmd tea.Cmd
		m.modal.input, cmd = m.modal.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch m.modal.kind {
	case modalLinkPrompt:
		return m.updateLinkPrompt(msg)
	case modalAlert:
		switch msg.String() {
		case "enter", "esc", " ", "ctrl+g":
			m.modal.close()
		}
		return nil
	case modalPickImage:
		return m.updateImagePicker(msg)
	}

	if msg.Paste {
		if m.focus != focusDocument {
			return nil
		}
		return m.handlePaste(string(msg.Runes))
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.CopyHTML):
		if err := copyToClipboard(m.editor.HTML()); err != nil {
			slog.Debug("tui: copy failed", "err", err)
			m.showMinibuffer("Copy failed: " + err.Error())
			return nil
		}
		m.showMinibuffer("Copied HTML to clipboard")
		return nil
	case key.Matches(msg, m.keys.TogglePreview):
		if m.preview == previewHTML {
			m.preview = previewRendered
		} else {
			m.preview = previewHTML
		}
		m.previewCache = ""
		m.showMinibuffer("Preview: " + m.preview.String())
		return nil
	}

	if m.focus == focusToolbar {
		return m.updateToolbarKey(msg)
	}
	return m.updateDocumentKey(msg)
}

func (m *appModel) updateLinkPrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.modal.finishPrompt(true)
		return nil
	case "esc", "ctrl+g":
		m.modal.finishPrompt(false)
		return nil
	}
	var cmd tea.Cmd
	m.modal.input, cmd = m.modal.input.Update(msg)
	return cmd
}

func (m *appModel) updateToolbarKey(msg tea.KeyMsg) tea.Cmd {
	actions := m.toolbar.Actions()
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.toolbarIdx > 0 {
			m.toolbarIdx--
		}
	case key.Matches(msg, m.keys.Right):
		if m.toolbarIdx < len(actions)-1 {
			m.toolbarIdx++
		}
	case key.Matches(msg, m.keys.Home):
		m.toolbarIdx = 0
	case key.Matches(msg, m.keys.End):
		m.toolbarIdx = len(actions) - 1
	case key.Matches(msg, m.keys.Activate):
		if m.toolbarIdx >= 0 && m.toolbarIdx < len(actions) {
			actions[m.toolbarIdx].Invoke()
		}
	case key.Matches(msg, m.keys.Back):
		m.focus = focusDocument
	default:
		// Shortcuts keep working while the toolbar has focus.
		m.invokeShortcut(msg.String())
	}
	return nil
}

func (m *appModel) invokeShortcut(k string) bool {
	for _, a := range m.toolbar.Actions() {
		if a.Shortcut == k {
			return m.toolbar.Invoke(a.ID)
		}
	}
	return false
}

func (m *appModel) updateDocumentKey(msg tea.KeyMsg) tea.Cmd {
	if m.invokeShortcut(msg.String()) {
		return nil
	}
	ed := m.editor
	switch {
	case key.Matches(msg, m.keys.FocusToolbar):
		m.focus = focusToolbar
	case key.Matches(msg, m.keys.SelectAll):
		ed.SelectAll()
	case key.Matches(msg, m.keys.Left):
		ed.Move(memdoc.Left, false)
	case key.Matches(msg, m.keys.Right):
		ed.Move(memdoc.Right, false)
	case key.Matches(msg, m.keys.Up):
		ed.Move(memdoc.Up, false)
	case key.Matches(msg, m.keys.Down):
		ed.Move(memdoc.Down, false)
	case key.Matches(msg, m.keys.Home):
		ed.Move(memdoc.LineStart, false)
	case key.Matches(msg, m.keys.End):
		ed.Move(memdoc.LineEnd, false)
	case key.Matches(msg, m.keys.SelLeft):
		ed.Move(memdoc.Left, true)
	case key.Matches(msg, m.keys.SelRight):
		ed.Move(memdoc.Right, true)
	case key.Matches(msg, m.keys.SelUp):
		ed.Move(memdoc.Up, true)
	case key.Matches(msg, m.keys.SelDown):
		ed.Move(memdoc.Down, true)
	case key.Matches(msg, m.keys.SelHome):
		ed.Move(memdoc.LineStart, true)
	case key.Matches(msg, m.keys.SelEnd):
		ed.Move(memdoc.LineEnd, true)
	case key.Matches(msg, m.keys.Enter):
		ed.SplitBlock()
	case key.Matches(msg, m.keys.Backspace):
		ed.Backspace()
	case key.Matches(msg, m.keys.Delete):
		ed.Delete()
	case msg.Type == tea.KeySpace:
		ed.InsertText(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		ed.InsertText(string(msg.Runes))
	}
	return nil
}
