package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a one-line text field filling the modal body width.
// The textinput view is flattened to a single line first; stray newlines from
// cursor styling would otherwise wrap inside the box and look like inserted
// lines while typing.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	field := " " + strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, inputView) + " "

	if xansi.StringWidth(field) > bodyW {
		// Clamp to the body width; terminate ANSI styling to prevent bleed.
		return xansi.Cut(field, 0, bodyW) + "\x1b[0m"
	}
	return lipgloss.PlaceHorizontal(bodyW, lipgloss.Left, field,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
}
