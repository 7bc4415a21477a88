package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyEditorResult_SavesBodyAndCleansUp(t *testing.T) {
	m, st := newTestModel(t)
	ref := seedNote(t, st, "alpha")
	if err := st.SetBody(context.Background(), ref, "before"); err != nil {
		t.Fatalf("SetBody: %v", err)
	}
	m.reloadSidebar()

	path := filepath.Join(t.TempDir(), "edited.md")
	if err := os.WriteFile(path, []byte("after\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	m.editRef = ref
	m.editPath = path
	m.editBefore = "before"

	cmd := m.applyEditorResult(editorDoneMsg{})
	if cmd == nil {
		t.Fatalf("expected a status command")
	}
	it, err := st.GetItem(context.Background(), ref)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.Body != "after\n" {
		t.Fatalf("expected body saved; got %q", it.Body)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed; stat err=%v", err)
	}
	if m.editPath != "" || !m.editRef.IsZero() {
		t.Fatalf("expected editor state cleared")
	}
}

func TestApplyEditorResult_NoChangesSkipsSave(t *testing.T) {
	m, st := newTestModel(t)
	ref := seedNote(t, st, "alpha")
	if err := st.SetBody(context.Background(), ref, "same"); err != nil {
		t.Fatalf("SetBody: %v", err)
	}

	path := filepath.Join(t.TempDir(), "edited.md")
	if err := os.WriteFile(path, []byte("same\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	m.editRef = ref
	m.editPath = path
	m.editBefore = "same"

	m.applyEditorResult(editorDoneMsg{})
	it, err := st.GetItem(context.Background(), ref)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.Body != "same" {
		t.Fatalf("whitespace-only diff must not save; got %q", it.Body)
	}
	if !strings.Contains(m.status, "no changes") {
		t.Fatalf("expected no-changes status; got %q", m.status)
	}
}

func TestApplyEditorResult_EditorErrorKeepsBody(t *testing.T) {
	m, st := newTestModel(t)
	ref := seedNote(t, st, "alpha")
	if err := st.SetBody(context.Background(), ref, "before"); err != nil {
		t.Fatalf("SetBody: %v", err)
	}

	path := filepath.Join(t.TempDir(), "edited.md")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	m.editRef = ref
	m.editPath = path
	m.editBefore = "before"

	m.applyEditorResult(editorDoneMsg{err: errors.New("exit status 1")})
	it, err := st.GetItem(context.Background(), ref)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.Body != "before" {
		t.Fatalf("failed editor must not save; got %q", it.Body)
	}
	if !m.statusErr {
		t.Fatalf("expected error status; got %q", m.status)
	}
}
