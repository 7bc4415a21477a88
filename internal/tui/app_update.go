package tui

import (
	"context"
	"strings"
	"time"

	"slate-cli/internal/drag"
	"slate-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	reloadInterval      = 750 * time.Millisecond
	statusFlashDuration = 4 * time.Second
)

func tickReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	return tickReload()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case reloadTickMsg:
		// Geometry is the engine's coordinate system; never swap rows under
		// a live gesture or a settling commit.
		if !m.eng.Dragging() && !m.eng.Locked() && m.storeChanged() {
			m.reloadSidebar()
			m.captureStoreModTimes()
			m.refreshPreview()
		}
		return m, tickReload()

	case animTickMsg:
		if msg.seq != m.animSeq || m.eng.Phase() != drag.PhaseAnimating {
			return m, nil
		}
		if m.eng.Progress(msg.at) >= 1 {
			m.eng.FinishAnimation()
			m.rowOffsets = nil
			return m, nil
		}
		return m, animTick(msg.seq)

	case animCleanupMsg:
		if msg.seq != m.animSeq {
			return m, nil
		}
		if m.eng.CleanupDue(msg.at) {
			m.log.Warn("settle animation overran; resetting", zap.Int("seq", msg.seq))
			m.eng.Reset()
			m.rowOffsets = nil
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.clearStatus()
		}
		return m, nil

	case editorDoneMsg:
		return m, m.applyEditorResult(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *appModel) resizePanes() {
	m.preview.Width = m.previewWidth()
	m.preview.Height = m.previewHeight()
	m.clampCursor()
	m.refreshPreview()
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.eng.Dragging() {
		if msg.String() == "esc" {
			m = m.cancelDrag()
		}
		return m, nil
	}
	if m.eng.Locked() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	// The filter minibuffer captures every keystroke so global bindings
	// like "n" stay typable.
	if m.filterActive {
		return m.updateFilter(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusPreview
		} else {
			m.focus = focusSidebar
		}
		return m, nil
	}

	if m.focus == focusPreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m.updateSidebarKeys(msg)
}

func (m appModel) updateSidebarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.clampCursor()
		m.syncPreviewToCursor()
	case "G", "end":
		if rows := m.displayRows(); len(rows) > 0 {
			m.cursor = len(rows) - 1
			m.clampCursor()
			m.syncPreviewToCursor()
		}
	case "enter":
		if r, ok := m.selectedRow(); ok {
			m.openItem(r.ref)
			m.captureStoreModTimes()
		}
	case "p":
		return m.togglePin()
	case "n":
		m.openNewNoteModal()
	case "e":
		if r, ok := m.selectedRow(); ok {
			cmd, err := m.openExternalEditor(r.ref)
			if err != nil {
				m.log.Error("open editor", zap.String("id", r.ref.ID), zap.Error(err))
				return m, m.flashStatus("editor failed: "+err.Error(), true)
			}
			return m, cmd
		}
	case "y":
		if r, ok := m.selectedRow(); ok {
			if err := copyToClipboard(r.ref.ID); err != nil {
				return m, m.flashStatus("copy failed: "+err.Error(), true)
			}
			return m, m.flashStatus("copied "+r.ref.ID, false)
		}
	case "r":
		if r, ok := m.selectedRow(); ok {
			m.openRenameModal(r)
		}
	case "d":
		if r, ok := m.selectedRow(); ok {
			m.openConfirmDeleteModal(r)
		}
	case "/":
		m.openFilter()
	case "esc":
		if strings.TrimSpace(m.filterQuery) != "" {
			m.clearFilter()
		} else {
			m.clearStatus()
		}
	}
	return m, nil
}

func (m appModel) togglePin() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	ctx := context.Background()
	done := "pinned"
	var err error
	if r.section == model.SectionPinned {
		done = "unpinned"
		err = m.st.Unpin(ctx, r.ref)
	} else {
		err = m.st.Pin(ctx, r.ref)
	}
	if err != nil {
		m.log.Error("toggle pin", zap.String("id", r.ref.ID), zap.Error(err))
		return m, m.flashStatus("pin failed: "+err.Error(), true)
	}
	m.reloadSidebar()
	m.captureStoreModTimes()
	m.cursorToRef(r.ref)
	m.syncPreviewToCursor()
	return m, m.flashStatus(done+" "+model.DisplayTitle(r.title), false)
}

func (m *appModel) openFilter() {
	m.filterActive = true
	m.input.Placeholder = "filter"
	m.input.SetValue(m.filterQuery)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) clearFilter() {
	m.filterActive = false
	m.filterQuery = ""
	m.input.Blur()
	m.input.Reset()
	m.clampCursor()
	m.syncPreviewToCursor()
}

func (m appModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.clearFilter()
		return m, nil
	case "enter":
		m.filterActive = false
		m.input.Blur()
		m.clampCursor()
		m.syncPreviewToCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filterQuery = m.input.Value()
	m.clampCursor()
	m.syncPreviewToCursor()
	return m, cmd
}

func (m *appModel) openNewNoteModal() {
	m.modal = modalNewNote
	m.modalRef = model.ItemRef{}
	m.input.Placeholder = "Title"
	m.input.Reset()
	m.input.Width = modalInputWidth(m.width)
	m.input.Focus()
}

func (m *appModel) openRenameModal(r displayRow) {
	m.modal = modalRename
	m.modalRef = r.ref
	m.input.Placeholder = "Title"
	m.input.SetValue(r.title)
	m.input.CursorEnd()
	m.input.Width = modalInputWidth(m.width)
	m.input.Focus()
}

func (m *appModel) openConfirmDeleteModal(r displayRow) {
	m.modal = modalConfirmDelete
	m.modalRef = r.ref
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalRef = model.ItemRef{}
	m.confirmFocus = confirmFocusConfirm
	m.input.Blur()
	m.input.Reset()
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewNote:
		return m.updateNewNoteModal(msg)
	case modalRename:
		return m.updateRenameModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmDeleteModal(msg)
	}
	m.modal = modalNone
	return m, nil
}

func (m appModel) updateNewNoteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.closeModal()
		n, err := m.st.CreateNote(context.Background(), title, "")
		if err != nil {
			m.log.Error("create note", zap.Error(err))
			return m, m.flashStatus("create failed: "+err.Error(), true)
		}
		ref := model.ItemRef{Kind: model.KindNote, ID: n.ID}
		m.openItem(ref)
		m.captureStoreModTimes()
		return m, m.flashStatus("created "+n.ID, false)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateRenameModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		ref := m.modalRef
		m.closeModal()
		if err := m.st.Rename(context.Background(), ref, title); err != nil {
			m.log.Error("rename item", zap.String("id", ref.ID), zap.Error(err))
			return m, m.flashStatus("rename failed: "+err.Error(), true)
		}
		m.reloadSidebar()
		m.captureStoreModTimes()
		m.cursorToRef(ref)
		m.refreshPreview()
		return m, m.flashStatus("renamed "+ref.ID, false)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDeleteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		confirmed := m.confirmFocus == confirmFocusConfirm
		ref := m.modalRef
		m.closeModal()
		if !confirmed {
			return m, nil
		}
		if err := m.st.Delete(context.Background(), ref); err != nil {
			m.log.Error("delete item", zap.String("id", ref.ID), zap.Error(err))
			return m, m.flashStatus("delete failed: "+err.Error(), true)
		}
		m.reloadSidebar()
		m.captureStoreModTimes()
		if m.previewRef == ref {
			m.previewRef = model.ItemRef{}
			m.previewCacheW = 0
		}
		m.syncPreviewToCursor()
		return m, m.flashStatus("deleted "+ref.ID, false)
	}
	return m, nil
}

// flashStatus shows a transient footer message and schedules its removal.
func (m *appModel) flashStatus(s string, isErr bool) tea.Cmd {
	m.setStatus(s, isErr)
	seq := m.statusSeq
	return tea.Tick(statusFlashDuration, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func modalInputWidth(width int) int {
	w := modalBodyWidth(width) - 2
	if w < 10 {
		w = 10
	}
	return w
}
