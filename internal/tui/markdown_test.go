package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("SLATE_TUI_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")
	t.Setenv("SLATE_TUI_DARKBG", "")

	t.Setenv("SLATE_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("SLATE_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("SLATE_TUI_DARKBG", "")
	t.Setenv("SLATE_TUI_THEME", "light")

	t.Setenv("SLATE_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_COLORFGBGHeuristic(t *testing.T) {
	t.Setenv("SLATE_TUI_MD_STYLE", "")
	t.Setenv("SLATE_TUI_THEME", "")
	t.Setenv("SLATE_TUI_DARKBG", "")

	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark for bg 0; got %q", got)
	}
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light for bg 15; got %q", got)
	}
}

func TestMarkdownStyleConfig_AppliesPalette(t *testing.T) {
	dark := markdownStyleConfig("dark")
	if got := strPtrValue(dark.H1.Color); got != colorSurfaceFg.Dark {
		t.Fatalf("H1 color: got %q want %q", got, colorSurfaceFg.Dark)
	}
	if got := strPtrValue(dark.Link.Color); got != colorAccent.Dark {
		t.Fatalf("Link color: got %q want %q", got, colorAccent.Dark)
	}
	if !boolPtrValue(dark.Link.Underline) {
		t.Fatalf("expected underlined links")
	}

	light := markdownStyleConfig("light")
	if got := strPtrValue(light.Link.Color); got != colorAccent.Light {
		t.Fatalf("Link color: got %q want %q", got, colorAccent.Light)
	}
	if got := strPtrValue(light.Text.Color); got != colorSurfaceFg.Light {
		t.Fatalf("Text color: got %q want %q", got, colorSurfaceFg.Light)
	}
}

func TestRenderMarkdown_EmptyAndTrailingNewlines(t *testing.T) {
	if got := renderMarkdown("   \n", 40); got != "" {
		t.Fatalf("expected empty render; got %q", got)
	}
	out := renderMarkdown("# Title\n\nbody text", 40)
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newlines trimmed; got %q", out)
	}
	plain := xansi.Strip(out)
	if !strings.Contains(plain, "Title") || !strings.Contains(plain, "body text") {
		t.Fatalf("expected rendered content; got %q", plain)
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
