package tui

import (
	"context"
	"strings"
	"time"

	"slate-cli/internal/drag"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

const animTickInterval = 16 * time.Millisecond

// updateMouse routes mouse input. Row hit-testing is computed from sidebar
// geometry; the marked panes only decide which pane an event belongs to
// (zone data lags one frame behind the render).
func (m appModel) updateMouse(msg tea.MouseMsg) (appModel, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.mousePress(msg)
		case tea.MouseButtonWheelUp:
			return m.mouseWheel(msg, -1)
		case tea.MouseButtonWheelDown:
			return m.mouseWheel(msg, 1)
		}
	case tea.MouseActionMotion:
		if m.eng.Dragging() {
			m.eng.Update(m.pointerAt(msg.Y))
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.mouseRelease(time.Now())
	}
	return m, nil
}

func (m appModel) mousePress(msg tea.MouseMsg) (appModel, tea.Cmd) {
	if m.modal != modalNone || m.eng.Locked() {
		return m, nil
	}
	if !m.overSidebar(msg) {
		if m.overPreview(msg) {
			m.focus = focusPreview
		}
		return m, nil
	}
	m.focus = focusSidebar

	idx, ok := m.rowIndexAtY(msg.Y)
	if !ok {
		return m, nil
	}
	rows := m.displayRows()
	r := rows[idx]
	if r.separator {
		return m, nil
	}
	m.cursor = idx
	m.syncPreviewToCursor()

	// A filtered list renders a different order than the store holds, so
	// gestures stay disabled until the filter is gone.
	if m.filtering() {
		return m, nil
	}
	if m.eng.Begin(m.dragLayout(), idx, r.ref, m.pointerAt(msg.Y)) {
		m.dragPrev = m.unifiedRefs()
		m.setStatus("drop: release   cancel: esc", false)
	}
	return m, nil
}

func (m appModel) mouseRelease(now time.Time) (appModel, tea.Cmd) {
	if !m.eng.Dragging() {
		return m, nil
	}
	m.clearStatus()
	c, ok := m.eng.End(true)
	if !ok {
		m.dragPrev = nil
		return m, nil
	}
	return m.applyCommit(c, now)
}

func (m appModel) cancelDrag() appModel {
	if m.eng.Dragging() {
		m.eng.End(false)
		m.dragPrev = nil
		m.clearStatus()
	}
	return m
}

// applyCommit writes the drop to the store, measures settle offsets against
// the pre-gesture order, and starts the animation clock.
func (m appModel) applyCommit(c drag.Commit, now time.Time) (appModel, tea.Cmd) {
	if err := c.Apply(context.Background(), m.st); err != nil {
		m.log.Error("apply drop", zap.String("id", c.Ref.ID), zap.Error(err))
		m.eng.Reset()
		m.dragPrev = nil
		m.reloadSidebar()
		m.captureStoreModTimes()
		return m, m.flashStatus("drop failed: "+err.Error(), true)
	}

	m.log.Info("row moved",
		zap.String("id", c.Ref.ID),
		zap.String("from", string(c.FromSection)),
		zap.String("to", string(c.ToSection)),
		zap.Int("fromLocal", c.FromLocal),
		zap.Int("toLocal", c.ToLocal),
	)

	prev := m.dragPrev
	m.dragPrev = nil
	m.reloadSidebar()
	m.captureStoreModTimes()
	m.cursorToRef(c.Ref)

	// Every displaced row eases back from where it just was; the moved row
	// starts from the pointer's residual rather than its old slot.
	offsets := drag.Offsets(prev, m.unifiedRefs(), 1)
	offsets[c.Ref] = c.ResidualOffset
	m.rowOffsets = offsets

	deadline := m.eng.StartAnimation(now)
	m.animSeq++
	return m, tea.Batch(animTick(m.animSeq), animCleanup(m.animSeq, now, deadline))
}

func animTick(seq int) tea.Cmd {
	return tea.Tick(animTickInterval, func(t time.Time) tea.Msg {
		return animTickMsg{seq: seq, at: t}
	})
}

func animCleanup(seq int, now, deadline time.Time) tea.Cmd {
	return tea.Tick(deadline.Sub(now)+50*time.Millisecond, func(t time.Time) tea.Msg {
		return animCleanupMsg{seq: seq, at: t}
	})
}

func (m appModel) mouseWheel(msg tea.MouseMsg, delta int) (appModel, tea.Cmd) {
	if m.modal != modalNone {
		return m, nil
	}
	// Geometry is the engine's coordinate system; freeze it mid-gesture.
	if m.eng.Dragging() || m.eng.Locked() {
		return m, nil
	}
	if m.overSidebar(msg) {
		maxScroll := len(m.displayRows()) - m.sidebarHeight()
		if maxScroll < 0 {
			maxScroll = 0
		}
		m.scroll += delta
		if m.scroll > maxScroll {
			m.scroll = maxScroll
		}
		if m.scroll < 0 {
			m.scroll = 0
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// pointerAt maps a terminal line to the engine's row coordinates: the
// center of the hovered row, in row units from the top of the list.
func (m appModel) pointerAt(y int) float64 {
	return float64(y-sidebarTopLine+m.scroll) + 0.5
}

func (m appModel) rowIndexAtY(y int) (int, bool) {
	if y < sidebarTopLine || y >= sidebarTopLine+m.sidebarHeight() {
		return 0, false
	}
	i := y - sidebarTopLine + m.scroll
	if i < 0 || i >= len(m.displayRows()) {
		return 0, false
	}
	return i, true
}

func (m appModel) overSidebar(msg tea.MouseMsg) bool {
	if z := zone.Get(zoneSidebar); !z.IsZero() {
		return z.InBounds(msg)
	}
	return msg.X < m.sidebarWidth() &&
		msg.Y >= sidebarTopLine && msg.Y < sidebarTopLine+m.sidebarHeight()
}

func (m appModel) overPreview(msg tea.MouseMsg) bool {
	if z := zone.Get(zonePreview); !z.IsZero() {
		return z.InBounds(msg)
	}
	return msg.X >= m.sidebarWidth()+1 &&
		msg.Y >= sidebarTopLine && msg.Y < sidebarTopLine+m.sidebarHeight()
}

func (m appModel) filtering() bool {
	return m.filterActive || strings.TrimSpace(m.filterQuery) != ""
}
