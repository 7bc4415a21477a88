package store

import (
	"strings"
	"testing"

	"slate-cli/internal/model"
)

func TestNewRandomID_PrefixAndLength(t *testing.T) {
	for _, prefix := range []string{"note", "conv"} {
		id, err := newRandomID(prefix)
		if err != nil {
			t.Fatalf("newRandomID(%q): %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix+"-") {
			t.Fatalf("expected %q prefix, got %q", prefix, id)
		}
		suffix := strings.TrimPrefix(id, prefix+"-")
		if got, want := len(suffix), 8; got != want {
			t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Fatalf("expected lowercase suffix, got %q", suffix)
		}
	}
}

func TestNewRandomID_NoObviousCollisions(t *testing.T) {
	seen := make(map[string]bool, 512)
	for i := 0; i < 512; i++ {
		id, err := newRandomID("note")
		if err != nil {
			t.Fatalf("newRandomID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id after %d draws: %q", i, id)
		}
		seen[id] = true
	}
}

func TestIDPrefixForKind(t *testing.T) {
	if got := idPrefixForKind(model.KindNote); got != "note" {
		t.Fatalf("note prefix = %q", got)
	}
	if got := idPrefixForKind(model.KindConversation); got != "conv" {
		t.Fatalf("conversation prefix = %q", got)
	}
}
