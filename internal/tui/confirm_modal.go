package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderConfirmModal draws a two-button confirmation box. The focused button
// carries the selection colors so tab cycling is visible at a glance.
func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	bodyW := modalBodyWidth(width)

	button := func(label string, active bool) string {
		st := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorSurfaceFg).
			Background(colorControlBg)
		if active {
			st = st.
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Bold(true)
		}
		return st.Render(label)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		button(confirmLabel, focus == confirmFocusConfirm),
		lipgloss.NewStyle().Background(colorControlBg).Render(" "),
		button(cancelLabel, focus == confirmFocusCancel),
	)

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}
