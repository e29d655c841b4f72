package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderAlertModal is a message with a single OK button.
func renderAlertModal(width int, title, body string) string {
	// Avoid borders here: some terminals show background artifacts when nesting bordered
	// components inside a modal with a background color.
	ok := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true).
		Render("OK")

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("enter/esc: close")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		ok,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
