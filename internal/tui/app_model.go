package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"slate-cli/internal/config"
	"slate-cli/internal/drag"
	"slate-cli/internal/model"
	"slate-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"
)

// displayRow is one visual sidebar row: either an item or the section
// separator between pinned and recent.
type displayRow struct {
	ref       model.ItemRef
	title     string
	section   model.Section
	separator bool
}

type appModel struct {
	st  *store.Store
	log *zap.Logger
	cfg config.Config

	width  int
	height int

	focus focusArea
	modal modalKind

	pinned []store.SidebarRow
	recent []store.SidebarRow

	// cursor indexes into displayRows(); keyboard motion skips the separator.
	cursor int
	scroll int

	filterActive bool
	filterQuery  string

	input        textinput.Model
	confirmFocus confirmModalFocus
	modalRef     model.ItemRef

	preview       viewport.Model
	previewRef    model.ItemRef
	previewTitle  string
	previewCacheW int

	eng     *drag.Engine
	animSeq int
	// dragPrev is the unified order captured when a gesture begins; settle
	// offsets are measured against it at commit time.
	dragPrev []model.ItemRef
	// rowOffsets displaces rows away from rest while the settle animation
	// runs, in row units. The moved row carries the pointer's residual.
	rowOffsets map[model.ItemRef]float64

	status    string
	statusSeq int
	statusErr bool

	// Pending external-editor session, if any.
	editRef    model.ItemRef
	editPath   string
	editBefore string

	lastDBModTime  time.Time
	lastWALModTime time.Time
}

func newAppModel(st *store.Store, cfg config.Config, log *zap.Logger) appModel {
	ec := drag.DefaultConfig()
	ec.Hysteresis = cfg.Sidebar.Hysteresis
	ec.Crossing = cfg.Sidebar.Crossing
	if cfg.Sidebar.AnimationMS > 0 {
		ec.Duration = time.Duration(cfg.Sidebar.AnimationMS) * time.Millisecond
	}

	m := appModel{
		st:  st,
		log: log,
		cfg: cfg,
		eng: drag.New(ec),
	}

	m.input = textinput.New()
	m.input.Placeholder = "Title"
	m.input.CharLimit = 200
	m.input.Width = 40

	m.preview = viewport.New(0, 0)

	m.reloadSidebar()
	m.captureStoreModTimes()
	m.syncPreviewToCursor()
	return m
}

// displayRows builds the sidebar's visual order: pinned rows, the separator,
// recent rows. With an active filter only matching item rows remain (no
// separator), which also disables dragging.
func (m appModel) displayRows() []displayRow {
	rows := make([]displayRow, 0, len(m.pinned)+len(m.recent)+1)
	q := strings.ToLower(strings.TrimSpace(m.filterQuery))

	for _, r := range m.pinned {
		rows = append(rows, displayRow{ref: r.Ref, title: r.Title, section: model.SectionPinned})
	}
	if q == "" {
		rows = append(rows, displayRow{separator: true})
	}
	for _, r := range m.recent {
		rows = append(rows, displayRow{ref: r.Ref, title: r.Title, section: model.SectionRecent})
	}

	if q == "" {
		return rows
	}
	filtered := rows[:0]
	for _, r := range rows {
		if r.separator {
			continue
		}
		if strings.Contains(strings.ToLower(model.DisplayTitle(r.title)), q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// unifiedRefs is the engine's view of the sidebar: item refs with the zero
// ref standing in for the separator.
func (m appModel) unifiedRefs() []model.ItemRef {
	pinned := make([]model.ItemRef, 0, len(m.pinned))
	for _, r := range m.pinned {
		pinned = append(pinned, r.Ref)
	}
	recent := make([]model.ItemRef, 0, len(m.recent))
	for _, r := range m.recent {
		recent = append(recent, r.Ref)
	}
	return drag.Unified(pinned, recent)
}

func (m appModel) dragLayout() drag.Layout {
	return drag.Layout{PinnedLen: len(m.pinned), RecentLen: len(m.recent), RowHeight: 1}
}

func (m appModel) selectedRow() (displayRow, bool) {
	rows := m.displayRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return displayRow{}, false
	}
	r := rows[m.cursor]
	if r.separator {
		return displayRow{}, false
	}
	return r, true
}

func (m *appModel) reloadSidebar() {
	ctx := context.Background()
	pinned, err := m.st.SectionRows(ctx, model.SectionPinned)
	if err != nil {
		m.log.Error("load pinned section", zap.Error(err))
		return
	}
	recent, err := m.st.SectionRows(ctx, model.SectionRecent)
	if err != nil {
		m.log.Error("load recent section", zap.Error(err))
		return
	}
	m.pinned = pinned
	m.recent = recent
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	rows := m.displayRows()
	if len(rows) == 0 {
		m.cursor = 0
		m.scroll = 0
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	// Never rest on the separator.
	if rows[m.cursor].separator {
		if m.cursor+1 < len(rows) {
			m.cursor++
		} else if m.cursor > 0 {
			m.cursor--
		}
	}
	m.scrollCursorIntoView()
}

// moveCursor shifts the selection by delta rows, skipping the separator.
func (m *appModel) moveCursor(delta int) {
	rows := m.displayRows()
	if len(rows) == 0 {
		return
	}
	i := m.cursor + delta
	for i >= 0 && i < len(rows) && rows[i].separator {
		i += delta
	}
	if i < 0 || i >= len(rows) {
		return
	}
	m.cursor = i
	m.scrollCursorIntoView()
	m.syncPreviewToCursor()
}

func (m *appModel) scrollCursorIntoView() {
	h := m.sidebarHeight()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// openItem records the visit (which bumps unpinned items to the front of
// recent) and loads the preview.
func (m *appModel) openItem(ref model.ItemRef) {
	ctx := context.Background()
	if err := m.st.TouchRecent(ctx, ref); err != nil {
		m.log.Error("touch recent", zap.String("id", ref.ID), zap.Error(err))
		return
	}
	m.reloadSidebar()
	m.cursorToRef(ref)
	m.loadPreview(ref)
}

// cursorToRef re-selects ref after a reload moved rows around.
func (m *appModel) cursorToRef(ref model.ItemRef) {
	for i, r := range m.displayRows() {
		if !r.separator && r.ref == ref {
			m.cursor = i
			m.scrollCursorIntoView()
			return
		}
	}
}

func (m *appModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
	m.statusSeq++
}

func (m *appModel) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *appModel) captureStoreModTimes() {
	db := store.DBPath(m.st.Dir())
	m.lastDBModTime = fileModTime(db)
	m.lastWALModTime = fileModTime(db + "-wal")
}

// storeChanged reports whether another process has written to the database
// since the last reload. WAL mode means most writes only touch the -wal file.
func (m *appModel) storeChanged() bool {
	db := store.DBPath(m.st.Dir())
	return fileModTime(db).After(m.lastDBModTime) ||
		fileModTime(db + "-wal").After(m.lastWALModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
