package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

func TestMarkdownStyle_FollowsTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	if got := markdownStyle("light"); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	if got := markdownStyle("dark"); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle("auto"); got != "light" {
		t.Fatalf("expected COLORFGBG light background to win under auto; got %q", got)
	}
	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(""); got != "dark" {
		t.Fatalf("expected dark from COLORFGBG; got %q", got)
	}
}

func TestMarkdownStyleConfig_DoesNotOverrideLinkStyles(t *testing.T) {
	t.Run("dark", func(t *testing.T) {
		got := markdownStyleConfig("dark")
		want := styles.DarkStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})

	t.Run("light", func(t *testing.T) {
		got := markdownStyleConfig("light")
		want := styles.LightStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	out := renderMarkdown("# Title\n\nsome **bold** text", 40, "dark")
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Fatalf("unexpected render: %q", out)
	}
	if renderMarkdown("   ", 40, "dark") != "" {
		t.Fatalf("expected blank markdown to render empty")
	}
}

func assertStylePrimitiveEqual(t *testing.T, got ansi.StylePrimitive, want ansi.StylePrimitive) {
	t.Helper()

	if strPtrValue(got.Color) != strPtrValue(want.Color) {
		t.Fatalf("Color: got %q want %q", strPtrValue(got.Color), strPtrValue(want.Color))
	}
	if strPtrValue(got.BackgroundColor) != strPtrValue(want.BackgroundColor) {
		t.Fatalf("BackgroundColor: got %q want %q", strPtrValue(got.BackgroundColor), strPtrValue(want.BackgroundColor))
	}
	if boolPtrValue(got.Underline) != boolPtrValue(want.Underline) {
		t.Fatalf("Underline: got %v want %v", boolPtrValue(got.Underline), boolPtrValue(want.Underline))
	}
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolPtrValue(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
