package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// modalBodyWidth is the content width available inside a modal box for a
// given terminal width.
func modalBodyWidth(width int) int {
	w := width - 10
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled surface box. No border: some terminals show
// background artifacts when nesting bordered components inside a colored
// modal.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW + 2).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW + 2).
		Padding(0, 1).
		Render(lipgloss.NewStyle().Width(bodyW).Render(content))

	return strings.Join([]string{header, body}, "\n")
}

// placeCentered overlays the modal in the middle of the full screen area.
func (m appModel) placeCentered(box string) string {
	w := m.width
	h := m.height
	if w <= 0 {
		w = lipgloss.Width(box)
	}
	if h <= 0 {
		h = lipgloss.Height(box)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

// dimBackground repaints s as a flat scrim. Inner ANSI styling is stripped
// first so brightly colored content can't bleed through the dim layer.
func dimBackground(s string) string {
	dim := lipgloss.NewStyle().Foreground(colorDimFg)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = dim.Render(xansi.Strip(lines[i]))
	}
	return strings.Join(lines, "\n")
}

// overlayCentered splices box over a dimmed base, centered. Falls back to
// plain centering when the terminal is too small to show both.
func (m appModel) overlayCentered(base, box string) string {
	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	if boxW >= m.width || boxH >= m.height {
		return m.placeCentered(box)
	}

	lines := strings.Split(normalizePane(dimBackground(base), m.width, m.height), "\n")
	boxLines := strings.Split(box, "\n")
	top := (m.height - boxH) / 2
	left := (m.width - boxW) / 2
	for i, bl := range boxLines {
		j := top + i
		if j < 0 || j >= len(lines) {
			continue
		}
		prefix := xansi.Cut(lines[j], 0, left)
		suffix := xansi.Cut(lines[j], left+boxW, m.width)
		lines[j] = prefix + normalizePane(bl, boxW, 1) + suffix
	}
	return strings.Join(lines, "\n")
}
