package tui

import (
	"context"

	"slate-cli/internal/model"

	"go.uber.org/zap"
)

// syncPreviewToCursor loads the selected row into the preview pane. A cache
// by ref+width makes cursor travel over already-rendered items free.
func (m *appModel) syncPreviewToCursor() {
	row, ok := m.selectedRow()
	if !ok {
		m.previewRef = model.ItemRef{}
		m.previewTitle = ""
		m.preview.SetContent("")
		return
	}
	if row.ref == m.previewRef && m.previewCacheW == m.previewWidth() {
		return
	}
	m.loadPreview(row.ref)
}

func (m *appModel) loadPreview(ref model.ItemRef) {
	it, err := m.st.GetItem(context.Background(), ref)
	if err != nil {
		m.log.Error("load preview", zap.String("id", ref.ID), zap.Error(err))
		m.previewRef = ref
		m.previewTitle = ""
		m.preview.SetContent(styleMuted().Render("(item unavailable)"))
		return
	}

	w := m.previewWidth()
	body := it.Body
	if body == "" {
		body = "_no content yet_"
	}

	m.previewRef = ref
	m.previewTitle = model.DisplayTitle(it.Title)
	m.previewCacheW = w
	m.preview.SetContent(renderMarkdown(body, w-2))
	m.preview.GotoTop()
}

// refreshPreview re-renders after a resize or an external store change.
func (m *appModel) refreshPreview() {
	if m.previewRef.IsZero() {
		m.syncPreviewToCursor()
		return
	}
	m.previewCacheW = 0
	m.loadPreview(m.previewRef)
}
