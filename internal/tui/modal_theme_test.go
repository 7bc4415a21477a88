package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderModalBox_UsesLightBackground_WhenThemeForcedLight(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
	})

	t.Setenv("SLATE_TUI_THEME", "light")
	t.Setenv("SLATE_TUI_DARKBG", "")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected HasDarkBackground=false after forcing light theme")
	}

	out := renderModalBox(80, "Title", "Body")

	// colorSurfaceBg resolves to 255 on light terminals, so the box body
	// should carry that background in the ANSI output.
	if !strings.Contains(out, "48;5;255") {
		t.Fatalf("expected modal to include light background (48;5;255); got: %q", out)
	}
}

func TestApplyThemePreference_DarkBGAndCOLORFGBG(t *testing.T) {
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })

	t.Setenv("SLATE_TUI_THEME", "")

	t.Setenv("SLATE_TUI_DARKBG", "true")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark background from SLATE_TUI_DARKBG=true")
	}

	t.Setenv("SLATE_TUI_DARKBG", "false")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected light background from SLATE_TUI_DARKBG=false")
	}

	t.Setenv("SLATE_TUI_DARKBG", "")
	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark background from COLORFGBG=15;0")
	}
}
