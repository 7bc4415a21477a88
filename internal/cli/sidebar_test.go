package cli

import (
	"strings"
	"testing"
)

// sidebarIDs flattens one section of a `slate sidebar` envelope to item ids.
func sidebarIDs(t *testing.T, sb map[string]any, section string) []string {
	t.Helper()
	rows, ok := sb[section].([]any)
	if !ok {
		t.Fatalf("sidebar missing %q section: %v", section, sb)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ref := r.(map[string]any)["ref"].(map[string]any)
		ids = append(ids, ref["id"].(string))
	}
	return ids
}

func addNote(t *testing.T, dir, title string) string {
	t.Helper()
	data := dataMap(t, mustRun(t, "notes", "add", title, "--dir", dir))
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("notes add %q returned no id: %v", title, data)
	}
	return id
}

func TestPinAppendsAndUnpinReturnsToRecentFront(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")
	b := addNote(t, dir, "Beta")
	c := addNote(t, dir, "Gamma")

	mustRun(t, "pin", "note", a, "--dir", dir)
	mustRun(t, "pin", "note", b, "--dir", dir)

	sb := dataMap(t, mustRun(t, "sidebar", "--dir", dir))
	if got := sidebarIDs(t, sb, "pinned"); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("pinned = %v, want [%s %s]", got, a, b)
	}
	if got := sidebarIDs(t, sb, "recent"); len(got) != 1 || got[0] != c {
		t.Fatalf("recent = %v, want [%s]", got, c)
	}

	mustRun(t, "unpin", "note", a, "--dir", dir)
	sb = dataMap(t, mustRun(t, "sidebar", "--dir", dir))
	if got := sidebarIDs(t, sb, "recent"); len(got) != 2 || got[0] != a {
		t.Fatalf("recent after unpin = %v, want %s first", got, a)
	}
}

func TestSidebarMoveWithinSection(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")
	b := addNote(t, dir, "Beta")
	c := addNote(t, dir, "Gamma")
	for _, id := range []string{a, b, c} {
		mustRun(t, "pin", "note", id, "--dir", dir)
	}

	sb := dataMap(t, mustRun(t, "sidebar", "move", "note", c, "--to", "0", "--dir", dir))
	if got := sidebarIDs(t, sb, "pinned"); got[0] != c || got[1] != a || got[2] != b {
		t.Fatalf("pinned after move = %v, want [%s %s %s]", got, c, a, b)
	}
}

func TestSidebarMoveAcrossSections(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")
	b := addNote(t, dir, "Beta")
	c := addNote(t, dir, "Gamma")
	mustRun(t, "pin", "note", a, "--dir", dir)

	// recent is [c, b]; drop a between them.
	sb := dataMap(t, mustRun(t, "sidebar", "move", "note", a, "--to", "1", "--section", "recent", "--dir", dir))
	if got := sidebarIDs(t, sb, "pinned"); len(got) != 0 {
		t.Fatalf("pinned after move = %v, want empty", got)
	}
	if got := sidebarIDs(t, sb, "recent"); len(got) != 3 || got[0] != c || got[1] != a || got[2] != b {
		t.Fatalf("recent after move = %v, want [%s %s %s]", got, c, a, b)
	}
}

func TestSidebarMoveRequiresTo(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")

	_, _, err := runCLI(t, []string{"sidebar", "move", "note", a, "--dir", dir})
	if err == nil || !IsUsageError(err) {
		t.Fatalf("expected usage error without --to, got %v", err)
	}
}

func TestSidebarMoveUnknownItem(t *testing.T) {
	dir := testWorkspace(t)
	addNote(t, dir, "Alpha")

	_, stderr, err := runCLI(t, []string{"sidebar", "move", "note", "note-zzzzzzzz", "--to", "0", "--dir", dir})
	if err == nil {
		t.Fatalf("expected error for item outside the sidebar")
	}
	if !strings.Contains(string(stderr), "not in the sidebar") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestSidebarMoveOutOfRangeIndex(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")
	addNote(t, dir, "Beta")

	_, _, err := runCLI(t, []string{"sidebar", "move", "note", a, "--to", "9", "--dir", dir})
	if err == nil {
		t.Fatalf("expected error for out-of-range --to")
	}
}

func TestRecentTouchBumpsRow(t *testing.T) {
	dir := testWorkspace(t)
	a := addNote(t, dir, "Alpha")
	addNote(t, dir, "Beta")

	rows := dataList(t, mustRun(t, "recent", "touch", "note", a, "--dir", dir))
	top := rows[0].(map[string]any)["ref"].(map[string]any)
	if top["id"] != a {
		t.Fatalf("recent after touch = %v, want %s first", top["id"], a)
	}
}
