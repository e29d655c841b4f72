package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	docH, previewH := m.layout()
	divider := styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 0)))

	var preview string
	if m.preview == previewRendered {
		preview = renderMarkdown(m.previewCache, m.width, m.theme)
	} else {
		preview = m.previewArea.View()
	}

	screen := strings.Join([]string{
		normalizePane(m.renderToolbar(), m.width, toolbarLines),
		divider,
		normalizePane(renderDocument(m.editor.View(), m.width, docH), m.width, docH),
		divider,
		normalizePane(preview, m.width, previewH),
		normalizePane(m.renderStatus(), m.width, statusLines),
	}, "\n")

	var box string
	switch m.modal.kind {
	case modalLinkPrompt:
		box = m.renderLinkPrompt()
	case modalAlert:
		box = renderAlertModal(m.width, "Link", m.modal.alertText)
	case modalPickImage:
		box = m.renderImagePickerModal()
	}
	if box != "" {
		return overlayCenter(box, m.width, m.height)
	}
	return screen
}

func (m appModel) renderStatus() string {
	left := m.minibufferText
	if left == "" {
		left = styleMuted().Render(m.focus.String() + "  " + m.preview.String())
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderLinkPrompt() string {
	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("enter: apply   empty: remove link   esc: cancel")
	content := strings.Join([]string{
		"URL",
		renderInputLine(bodyW, m.modal.input.View()),
		"",
		help,
	}, "\n")
	return renderModalBox(m.width, "Link", content)
}
