package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane(t *testing.T) {
	t.Parallel()

	got := normalizePane("short\n"+strings.Repeat("x", 30)+"\n\x1b[1mbold\x1b[0m", 10, 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d, want 4", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 10 {
			t.Errorf("line %d width=%d, want 10: %q", i, w, ln)
		}
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("expected truncation marker on long line, got %q", lines[1])
	}

	huge := strings.Repeat("y", 10000)
	if w := xansi.StringWidth(normalizePane(huge, 20, 1)); w != 20 {
		t.Fatalf("huge line width=%d, want 20", w)
	}
}
