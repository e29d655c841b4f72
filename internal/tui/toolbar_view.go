package tui

import (
	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/toolbar"
)

// Separators sit after these actions, splitting the bar into groups.
var toolbarGroupEnds = map[string]bool{
	"heading-3":       true,
	"underline":       true,
	"horizontal-rule": true,
	"image":           true,
	"redo":            true,
	"align-right":     true,
	"ordered-list":    true,
}

func (m appModel) renderToolbar() string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg)
	pressed := base.Background(colorPressedBg).Bold(true)
	focused := base.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	sep := styleMuted().Render(glyphSeparator())

	var out string
	for i, a := range m.toolbar.Actions() {
		label := glyphIcon(a.Icon)
		var btn string
		switch {
		case m.focus == focusToolbar && i == m.toolbarIdx:
			btn = focused.Render(label)
		case a.State() == toolbar.On:
			btn = pressed.Render(label)
		default:
			btn = base.Render(label)
		}
		out += btn
		if toolbarGroupEnds[a.ID] {
			out += sep
		}
	}
	if m.focus == focusToolbar {
		if a, ok := m.focusedAction(); ok {
			hint := a.Label
			if a.Shortcut != "" {
				hint += " (" + a.Shortcut + ")"
			}
			out += " " + styleMuted().Render(hint)
		}
	}
	return out
}

func (m appModel) focusedAction() (toolbar.Action, bool) {
	actions := m.toolbar.Actions()
	if m.toolbarIdx < 0 || m.toolbarIdx >= len(actions) {
		return toolbar.Action{}, false
	}
	return actions[m.toolbarIdx], true
}
