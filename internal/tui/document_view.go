package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/document"
	"inkwell/internal/document/memdoc"
)

// renderDocument draws the block view into width columns and keeps the
// cursor line within the first height lines.
func renderDocument(blocks []memdoc.BlockView, width, height int) string {
	width = max(width, 10)
	var lines []string
	cursorLine := 0
	for _, b := range blocks {
		if b.Cursor >= 0 {
			cursorLine = len(lines)
		}
		lines = append(lines, renderBlock(b, width)...)
	}
	// Scroll so the cursor's block stays on screen.
	if height > 0 && cursorLine >= height {
		lines = lines[cursorLine-height+1:]
	}
	return strings.Join(lines, "\n")
}

func blockPrefix(b memdoc.BlockView) string {
	var p string
	if b.Quote {
		p += styleMuted().Render(glyphQuoteBar()) + " "
	}
	switch b.List {
	case document.BulletList:
		p += glyphBullet() + " "
	case document.OrderedList:
		p += strconv.Itoa(b.Number) + ". "
	}
	return p
}

func renderBlock(b memdoc.BlockView, width int) []string {
	prefix := blockPrefix(b)
	innerW := max(width-lipgloss.Width(prefix), 1)

	if b.Kind == document.HorizontalRule {
		rule := styleMuted().Render(strings.Repeat(glyphHRule(), innerW))
		if b.Cursor >= 0 {
			rule = cursorStyle().Render(glyphHRule()) + styleMuted().Render(strings.Repeat(glyphHRule(), innerW-1))
		}
		return []string{prefix + rule}
	}

	st := lipgloss.NewStyle().Width(innerW)
	switch b.Kind {
	case document.Heading:
		st = st.Bold(true).Foreground(colorAccent)
	case document.CodeBlock:
		st = st.Background(colorCodeBg)
	}
	switch b.Align {
	case document.AlignCenter:
		st = st.Align(lipgloss.Center)
	case document.AlignRight:
		st = st.Align(lipgloss.Right)
	}

	body := st.Render(renderCells(b.Cells, b.Cursor))
	out := strings.Split(body, "\n")
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	for i := range out {
		if i == 0 {
			out[i] = prefix + out[i]
		} else {
			out[i] = indent + out[i]
		}
	}
	return out
}

func cursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Reverse(true)
}

func renderCells(cells []memdoc.CellView, cursor int) string {
	var sb strings.Builder
	for i, c := range cells {
		text := string(c.Rune)
		if c.Image {
			text = glyphImage()
		}
		st := lipgloss.NewStyle()
		if c.Bold {
			st = st.Bold(true)
		}
		if c.Italic {
			st = st.Italic(true)
		}
		if c.Underline || c.Href != "" {
			st = st.Underline(true)
		}
		if c.Href != "" {
			st = st.Foreground(colorAccent)
		}
		if c.Highlight {
			st = st.Background(colorHighlightBg)
		}
		if c.Selected {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg)
		}
		if i == cursor {
			st = st.Reverse(true)
		}
		sb.WriteString(st.Render(text))
	}
	if cursor == len(cells) {
		sb.WriteString(cursorStyle().Render(" "))
	}
	return sb.String()
}
