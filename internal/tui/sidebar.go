package tui

import (
	"math"
	"strings"
	"time"

	"slate-cli/internal/drag"
	"slate-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// renderSidebar draws the visible window of sidebar rows. While a settle
// animation runs, displaced rows render away from their rest slot; while a
// gesture is active, the lifted row follows the pointer and the resolved
// drop slot carries a marker.
func (m appModel) renderSidebar(now time.Time) string {
	rows := m.displayRows()
	h := m.sidebarHeight()
	w := m.sidebarWidth()

	if len(rows) == 0 {
		return styleMuted().Render("no items yet. press n to create a note")
	}

	lines := make([]string, h)

	dragging := m.eng.Dragging()
	animating := m.eng.Phase() == drag.PhaseAnimating
	progress := 1.0
	if animating {
		progress = m.eng.Progress(now)
	}

	liftedIdx, targetIdx := -1, -1
	if dragging {
		s := m.eng.Session()
		liftedIdx = s.SourceIndex
		targetIdx = s.TargetIndex
	}

	place := func(line int, s string) {
		vis := line - m.scroll
		if vis < 0 || vis >= h {
			return
		}
		lines[vis] = s
	}

	// Rows at rest first, displaced rows second so motion renders on top.
	for pass := 0; pass < 2; pass++ {
		for i, r := range rows {
			off, moving := m.rowOffsets[r.ref]
			if animating && moving != (pass == 1) {
				continue
			}
			if !animating && pass == 1 {
				break
			}
			line := i
			if animating && moving {
				line = i + drag.Displace(off, progress)
			}
			switch {
			case dragging && i == liftedIdx:
				place(line, m.renderGhostRow(r, w))
			default:
				place(line, m.renderRow(r, w, i, dragging, targetIdx))
			}
		}
	}

	if dragging && liftedIdx >= 0 && liftedIdx < len(rows) {
		s := m.eng.Session()
		ptr := int(math.Floor(s.PointerStart + s.PointerOffset))
		place(ptr, m.renderLiftedRow(rows[liftedIdx], w))
	}

	return strings.Join(lines, "\n")
}

func (m appModel) renderRow(r displayRow, w, idx int, dragging bool, targetIdx int) string {
	if r.separator {
		return renderSeparatorRow(w, dragging && idx == targetIdx)
	}

	gutter := " "
	if dragging && idx == targetIdx {
		gutter = lipgloss.NewStyle().Foreground(colorAccent).Render(glyphDropMark())
	}

	line := gutter + " " + rowGlyph(r) + " " + rowTitle(r, w)

	if !dragging && m.modal == modalNone && m.focus == focusSidebar && idx == m.cursor {
		return lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render(line)
	}
	return line
}

func (m appModel) renderGhostRow(r displayRow, w int) string {
	return styleMuted().Render("  " + rowGlyph(r) + " " + rowTitle(r, w))
}

func (m appModel) renderLiftedRow(r displayRow, w int) string {
	line := "  " + rowGlyph(r) + " " + rowTitle(r, w)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSelectedFg).
		Background(colorLiftedBg).
		Render(line)
}

func rowGlyph(r displayRow) string {
	if r.section == model.SectionPinned {
		return glyphPin()
	}
	if r.ref.Kind == model.KindConversation {
		return glyphConvo()
	}
	return glyphNote()
}

func rowTitle(r displayRow, w int) string {
	// Gutter, glyph and their spacing take four columns.
	avail := w - 4
	if avail < 1 {
		avail = 1
	}
	return truncate.StringWithTail(model.DisplayTitle(r.title), uint(avail), "…")
}

func renderSeparatorRow(w int, targeted bool) string {
	label := " recent "
	rule := glyphHRule()
	fill := w - len(label) - 4
	if fill < 2 {
		fill = 2
	}
	left := strings.Repeat(rule, 2)
	right := strings.Repeat(rule, fill-2)
	line := " " + left + label + right

	st := styleMuted()
	if targeted {
		st = lipgloss.NewStyle().Foreground(colorAccent)
		line = glyphDropMark() + left + label + right
	}
	return st.Render(line)
}
