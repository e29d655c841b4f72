package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/ingest"
)

// handlePaste routes a bracketed paste. Terminals deliver a drag-and-drop as
// a paste of file paths; a recognised drop goes to the image pipeline and is
// never inserted as text.
func (m *appModel) handlePaste(text string) tea.Cmd {
	if dt, ok := ingest.ParseDrop(text); ok {
		slog.Debug("tui: drop", "files", len(dt.Files))
		fut, accepted := m.pipeline.Drop(dt)
		if !accepted {
			m.showMinibuffer("Ignored dropped file: " + dt.Files[0].Name())
			return nil
		}
		return waitForImage(dt.Files[0].Name(), fut)
	}
	m.editor.Paste(text)
	return nil
}

func (m *appModel) ingestFile(f ingest.File) tea.Cmd {
	fut, ok := m.pipeline.Accept(f)
	if !ok {
		m.showMinibuffer("Not an image: " + f.Name())
		return nil
	}
	return waitForImage(f.Name(), fut)
}

// waitForImage blocks in a tea.Cmd goroutine; the engine is only touched
// once the message is back on the UI loop.
func waitForImage(name string, fut *ingest.Future) tea.Cmd {
	return func() tea.Msg {
		return imageEncodedMsg{name: name, res: fut.Wait()}
	}
}

func (m *appModel) completeImage(msg imageEncodedMsg) {
	if m.pipeline.Complete(msg.res) {
		m.focus = focusDocument
		m.showMinibuffer("Inserted " + msg.name)
		return
	}
	if msg.res.Err != nil {
		slog.Debug("tui: image failed", "name", msg.name, "err", msg.res.Err)
	}
	m.showMinibuffer("Could not insert " + msg.name)
}
