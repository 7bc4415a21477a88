package tui

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"slate-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type editorDoneMsg struct {
	err error
}

func editorCommand() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor writes the item's body to a temp file and suspends the
// program while $VISUAL/$EDITOR runs on it.
func (m *appModel) openExternalEditor(ref model.ItemRef) (tea.Cmd, error) {
	it, err := m.st.GetItem(context.Background(), ref)
	if err != nil {
		return nil, err
	}

	argv := splitShellWords(editorCommand())
	if len(argv) == 0 {
		argv = []string{"vi"}
	}

	f, err := os.CreateTemp("", "slate-body-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(it.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.editRef = ref
	m.editPath = path
	m.editBefore = it.Body

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	}), nil
}

// applyEditorResult saves the edited body back to the store and cleans up
// the temp file.
func (m *appModel) applyEditorResult(msg editorDoneMsg) tea.Cmd {
	ref := m.editRef
	path := m.editPath
	before := m.editBefore
	m.editRef = model.ItemRef{}
	m.editPath = ""
	m.editBefore = ""

	if strings.TrimSpace(path) == "" {
		return nil
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.log.Error("external editor", zap.String("id", ref.ID), zap.Error(msg.err))
		return m.flashStatus("editor failed: "+msg.err.Error(), true)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		m.log.Error("read edited body", zap.String("path", path), zap.Error(err))
		return m.flashStatus("editor read failed: "+err.Error(), true)
	}
	after := string(b)
	if strings.TrimSpace(after) == strings.TrimSpace(before) {
		return m.flashStatus("no changes from "+editorCommand(), false)
	}

	if err := m.st.SetBody(context.Background(), ref, after); err != nil {
		m.log.Error("save edited body", zap.String("id", ref.ID), zap.Error(err))
		return m.flashStatus("save failed: "+err.Error(), true)
	}
	m.captureStoreModTimes()
	if m.previewRef == ref {
		m.refreshPreview()
	}
	return m.flashStatus("saved "+ref.ID, false)
}
