package tui

import (
	"strings"
	"sync"

	"inkwell/internal/toolbar"
)

// Terminal apps can't change the user's font, so affordances come in a
// Unicode and an ASCII set for terminals that render some glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference takes the configured preference (file or
// INKWELL_TUI_GLYPHS). Unknown values are ignored.
func applyGlyphPreference(pref string) {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphBullet() string { return pick("•", "*") }

func glyphQuoteBar() string { return pick("▎", "|") }

func glyphHRule() string { return pick("─", "-") }

func glyphImage() string { return pick("▣ image", "[image]") }

func glyphSeparator() string { return pick("│", "|") }

var iconGlyphs = map[toolbar.Icon][2]string{
	toolbar.IconHeading1:    {"H1", "H1"},
	toolbar.IconHeading2:    {"H2", "H2"},
	toolbar.IconHeading3:    {"H3", "H3"},
	toolbar.IconBold:        {"𝐁", "B"},
	toolbar.IconItalic:      {"𝐼", "I"},
	toolbar.IconUnderline:   {"U̲", "U"},
	toolbar.IconCode:        {"</>", "<>"},
	toolbar.IconQuote:       {"❝", "\""},
	toolbar.IconMinus:       {"—", "--"},
	toolbar.IconImage:       {"▣", "Img"},
	toolbar.IconUndo:        {"↶", "<-"},
	toolbar.IconRedo:        {"↷", "->"},
	toolbar.IconAlignLeft:   {"⇤", "|<"},
	toolbar.IconAlignCenter: {"↔", "<>"},
	toolbar.IconAlignRight:  {"⇥", ">|"},
	toolbar.IconList:        {"•≡", "*-"},
	toolbar.IconListOrdered: {"1≡", "1."},
	toolbar.IconHighlighter: {"✎", "Hl"},
	toolbar.IconLink:        {"🔗", "Ln"},
}

func glyphIcon(icon toolbar.Icon) string {
	g, ok := iconGlyphs[icon]
	if !ok {
		return string(icon)
	}
	if glyphs() == glyphSetASCII {
		return g[1]
	}
	return g[0]
}
