package tui

import (
	"fmt"
	"strings"
	"time"

	"slate-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

// sidebarTopLine is the terminal row where the first sidebar row renders:
// header, blank line, then the list.
const sidebarTopLine = 2

const (
	zoneSidebar = "slate.sidebar"
	zonePreview = "slate.preview"
)

func (m appModel) sidebarWidth() int {
	w := m.cfg.Sidebar.Width
	if w < 16 {
		w = 16
	}
	if m.width > 0 && w > m.width/2 {
		w = m.width / 2
	}
	if w < 16 {
		w = 16
	}
	return w
}

func (m appModel) previewWidth() int {
	w := m.width - m.sidebarWidth() - 1
	if w < 20 {
		w = 20
	}
	return w
}

// sidebarHeight is the pane height shared by both columns: everything but
// the header, the blank line under it, and the footer.
func (m appModel) sidebarHeight() int {
	h := m.height - sidebarTopLine - 1
	if h < 1 {
		h = 1
	}
	return h
}

// previewHeight leaves room for the title line and rule above the viewport.
func (m appModel) previewHeight() int {
	h := m.sidebarHeight() - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	h := m.sidebarHeight()
	sidebar := normalizePane(m.renderSidebar(time.Now()), m.sidebarWidth(), h)
	preview := normalizePane(m.renderPreview(), m.previewWidth(), h)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneSidebar, sidebar),
		" ",
		zone.Mark(zonePreview, preview),
	)

	out := strings.Join([]string{m.renderHeader(), "", body, m.renderFooter()}, "\n")
	if m.modal != modalNone {
		out = m.overlayCentered(out, m.renderModal())
	}
	return zone.Scan(out)
}

func (m appModel) renderHeader() string {
	return lipgloss.NewStyle().
		Bold(true).
		Render(fmt.Sprintf(" Slate  Dir=%s", m.st.Dir()))
}

func (m appModel) renderPreview() string {
	if m.previewRef.IsZero() {
		return styleMuted().Render(" nothing selected")
	}

	w := m.previewWidth()
	avail := w - 3
	if avail < 1 {
		avail = 1
	}
	glyph := glyphNote()
	if m.previewRef.Kind == model.KindConversation {
		glyph = glyphConvo()
	}

	headStyle := lipgloss.NewStyle().Bold(true)
	if m.focus == focusPreview {
		headStyle = headStyle.Foreground(colorAccent)
	}
	head := headStyle.Render(" " + glyph + " " + truncate.StringWithTail(m.previewTitle, uint(avail), "…"))
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))

	return strings.Join([]string{head, rule, m.preview.View()}, "\n")
}

func (m appModel) renderFooter() string {
	w := m.width
	if m.filterActive {
		return normalizePane(" /"+m.input.View(), w, 1)
	}
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = lipgloss.NewStyle().Foreground(colorErrorFg)
		}
		return normalizePane(st.Render(" "+m.status), w, 1)
	}
	if strings.TrimSpace(m.filterQuery) != "" {
		return normalizePane(styleMuted().Render(" filter: "+m.filterQuery+"  esc: clear"), w, 1)
	}

	help := " enter: open  p: pin  n: new  r: rename  d: delete  /: filter  drag: reorder  q: quit"
	if m.focus == focusPreview {
		help = " j/k: scroll  tab: sidebar  q: quit"
	}
	return normalizePane(lipgloss.NewStyle().Faint(true).Render(help), w, 1)
}

// renderModal returns the box for the active modal; View composes it over
// the dimmed frame.
func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalNewNote:
		content := strings.Join([]string{
			renderInputLine(bodyW, m.input.View()),
			"",
			styleMuted().Width(bodyW).Render("enter: create   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "New note", content)
	case modalRename:
		content := strings.Join([]string{
			renderInputLine(bodyW, m.input.View()),
			"",
			styleMuted().Width(bodyW).Render("enter: rename   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "Rename", content)
	case modalConfirmDelete:
		body := "Delete " + m.titleForRef(m.modalRef) + "?"
		return renderConfirmModal(m.width, "Delete", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}

func (m appModel) titleForRef(ref model.ItemRef) string {
	for _, r := range m.displayRows() {
		if !r.separator && r.ref == ref {
			return model.DisplayTitle(r.title)
		}
	}
	return ref.ID
}
