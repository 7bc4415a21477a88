package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNotesAddShowRenameList(t *testing.T) {
	dir := testWorkspace(t)

	added := dataMap(t, mustRun(t, "notes", "add", "Meeting notes", "--body", "agenda items", "--dir", dir))
	id, _ := added["id"].(string)
	if !strings.HasPrefix(id, "note-") {
		t.Fatalf("note id = %q, want note- prefix", id)
	}

	shown := dataMap(t, mustRun(t, "notes", "show", id, "--dir", dir))
	if shown["title"] != "Meeting notes" || shown["body"] != "agenda items" {
		t.Fatalf("show = %v", shown)
	}

	renamed := dataMap(t, mustRun(t, "notes", "rename", id, "Standup notes", "--dir", dir))
	if renamed["title"] != "Standup notes" {
		t.Fatalf("rename = %v", renamed)
	}

	list := dataList(t, mustRun(t, "notes", "list", "--dir", dir))
	if len(list) != 1 {
		t.Fatalf("list has %d notes, want 1", len(list))
	}
}

func TestNotesAddSurfacesInRecent(t *testing.T) {
	dir := testWorkspace(t)

	first := dataMap(t, mustRun(t, "notes", "add", "First", "--dir", dir))
	second := dataMap(t, mustRun(t, "notes", "add", "Second", "--dir", dir))

	sb := dataMap(t, mustRun(t, "sidebar", "--dir", dir))
	recent, _ := sb["recent"].([]any)
	if len(recent) != 2 {
		t.Fatalf("recent = %v, want 2 rows", sb["recent"])
	}
	top := recent[0].(map[string]any)["ref"].(map[string]any)
	if top["id"] != second["id"] {
		t.Fatalf("top of recent = %v, want newest note %v", top["id"], second["id"])
	}
	bottom := recent[1].(map[string]any)["ref"].(map[string]any)
	if bottom["id"] != first["id"] {
		t.Fatalf("bottom of recent = %v, want %v", bottom["id"], first["id"])
	}
}

func TestNotesSetBodyFromFile(t *testing.T) {
	dir := testWorkspace(t)
	added := dataMap(t, mustRun(t, "notes", "add", "Draft", "--dir", dir))
	id := added["id"].(string)

	path := filepath.Join(t.TempDir(), "body.md")
	if err := os.WriteFile(path, []byte("# heading\n\nbody text\n"), 0o644); err != nil {
		t.Fatalf("write body file: %v", err)
	}
	updated := dataMap(t, mustRun(t, "notes", "set-body", id, "--file", path, "--dir", dir))
	if updated["body"] != "# heading\n\nbody text\n" {
		t.Fatalf("body = %q", updated["body"])
	}
}

func TestNotesSetBodyRejectsBothSources(t *testing.T) {
	dir := testWorkspace(t)
	_, _, err := runCLI(t, []string{"notes", "set-body", "note-x", "--body", "a", "--file", "b", "--dir", dir})
	if err == nil || !IsUsageError(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestNotesRmDropsSidebarRow(t *testing.T) {
	dir := testWorkspace(t)
	added := dataMap(t, mustRun(t, "notes", "add", "Scratch", "--dir", dir))
	id := added["id"].(string)

	sb := dataMap(t, mustRun(t, "sidebar", "--dir", dir))
	if recent, _ := sb["recent"].([]any); len(recent) != 1 {
		t.Fatalf("recent before rm = %v", sb["recent"])
	}

	mustRun(t, "notes", "rm", id, "--dir", dir)

	if _, _, err := runCLI(t, []string{"notes", "show", id, "--dir", dir}); err == nil {
		t.Fatalf("show after rm should fail")
	}
	sb = dataMap(t, mustRun(t, "sidebar", "--dir", dir))
	if recent, _ := sb["recent"].([]any); len(recent) != 0 {
		t.Fatalf("recent after rm = %v", sb["recent"])
	}
}

func TestConvosAddAndShow(t *testing.T) {
	dir := testWorkspace(t)
	added := dataMap(t, mustRun(t, "convos", "add", "Support thread", "--body", "hello", "--dir", dir))
	id := added["id"].(string)
	if !strings.HasPrefix(id, "conv-") {
		t.Fatalf("conversation id = %q, want conv- prefix", id)
	}
	shown := dataMap(t, mustRun(t, "convos", "show", id, "--dir", dir))
	if shown["title"] != "Support thread" || shown["body"] != "hello" {
		t.Fatalf("show = %v", shown)
	}
}

func TestSearchMatchesTitleAndBody(t *testing.T) {
	dir := testWorkspace(t)
	mustRun(t, "notes", "add", "Roadmap", "--body", "ship the sidebar", "--dir", dir)
	mustRun(t, "convos", "add", "Sidebar questions", "--dir", dir)
	mustRun(t, "notes", "add", "Groceries", "--dir", dir)

	hits := dataList(t, mustRun(t, "search", "sidebar", "--dir", dir))
	if len(hits) != 2 {
		t.Fatalf("search hits = %d, want 2", len(hits))
	}
}

func TestEventsLogAndEntityFilter(t *testing.T) {
	dir := testWorkspace(t)
	added := dataMap(t, mustRun(t, "notes", "add", "Audited", "--dir", dir))
	id := added["id"].(string)
	mustRun(t, "pin", "note", id, "--dir", dir)
	mustRun(t, "notes", "add", "Bystander", "--dir", dir)

	evs := dataList(t, mustRun(t, "events", "--dir", dir))
	var types []string
	for _, e := range evs {
		types = append(types, e.(map[string]any)["type"].(string))
	}
	for _, want := range []string{"note.create", "sidebar.touch", "sidebar.pin"} {
		found := false
		for _, ty := range types {
			if ty == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("event types %v missing %q", types, want)
		}
	}

	filtered := dataList(t, mustRun(t, "events", "--entity", id, "--dir", dir))
	if len(filtered) != 3 {
		t.Fatalf("entity events = %d, want 3 (create, touch, pin)", len(filtered))
	}
	for _, e := range filtered {
		if got := e.(map[string]any)["entityId"]; got != id {
			t.Fatalf("filtered event for %v, want %q", got, id)
		}
	}
}
