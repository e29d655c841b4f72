package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Appearance carries the user's display preferences.
type Appearance struct {
	Glyphs string
	Theme  string
}

// Run opens the editor full screen and returns the document's HTML when the
// user quits.
func Run(opts Options, look Appearance) (string, error) {
	applyColorProfilePreference()
	applyThemePreference(look.Theme)
	applyGlyphPreference(look.Glyphs)
	if opts.Theme == "" {
		opts.Theme = look.Theme
	}

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("run editor: %w", err)
	}
	if fm, ok := final.(appModel); ok {
		return fm.editor.HTML(), nil
	}
	return opts.Editor.HTML(), nil
}
