package store

import (
	"testing"

	"slate-cli/internal/model"
)

func noteRef(id string) model.ItemRef {
	return model.ItemRef{Kind: model.KindNote, ID: id}
}

func entry(id, rank string) model.SidebarEntry {
	return model.SidebarEntry{Ref: noteRef(id), Section: model.SectionPinned, Rank: rank}
}

func orderAfterPlan(t *testing.T, entries []model.SidebarEntry, plan ReorderPlan) []string {
	t.Helper()
	out := append([]model.SidebarEntry{}, entries...)
	for i := range out {
		if r, ok := plan.RankByKey[refKey(out[i].Ref)]; ok {
			out[i].Rank = r
		}
	}
	sortEntriesByRank(out)
	ids := make([]string, 0, len(out))
	for _, e := range out {
		ids = append(ids, e.Ref.ID)
	}
	return ids
}

func TestPlanSectionMove_FastPathTouchesOnlyMovedRow(t *testing.T) {
	entries := []model.SidebarEntry{
		entry("a", "c"),
		entry("b", "h"),
		entry("x", "s"),
	}
	// Move x before b: post-removal list is [a, b], insertAt=1.
	plan, err := PlanSectionMove(entries, noteRef("x"), 1)
	if err != nil {
		t.Fatalf("PlanSectionMove: %v", err)
	}
	if plan.UsedFallback {
		t.Fatalf("expected fast path, got fallback plan %+v", plan)
	}
	if len(plan.RankByKey) != 1 {
		t.Fatalf("expected exactly the moved row updated, got %+v", plan.RankByKey)
	}
	got := orderAfterPlan(t, entries, plan)
	if got[0] != "a" || got[1] != "x" || got[2] != "b" {
		t.Fatalf("expected order [a x b]; got %v", got)
	}
}

func TestPlanSectionMove_SamePosition_IsEmptyPlan(t *testing.T) {
	entries := []model.SidebarEntry{
		entry("a", "c"),
		entry("b", "h"),
	}
	plan, err := PlanSectionMove(entries, noteRef("a"), 0)
	if err != nil {
		t.Fatalf("PlanSectionMove: %v", err)
	}
	if len(plan.RankByKey) != 0 {
		t.Fatalf("expected empty plan for same-position move, got %+v", plan.RankByKey)
	}
}

func TestPlanSectionMove_PrefixAdjacentBounds_DoesNotJump(t *testing.T) {
	// "y" < "y0" is a prefix-adjacent pair with no in-between rank available.
	// Moving a row into that gap must not produce a rank sorting after "y0"
	// (which would show as a jump past the intended slot).
	entries := []model.SidebarEntry{
		entry("a", "y"),
		entry("b", "y0"),
		entry("x", "h"),
	}
	plan, err := PlanSectionMove(entries, noteRef("x"), 1)
	if err != nil {
		t.Fatalf("PlanSectionMove: %v", err)
	}
	got := orderAfterPlan(t, entries, plan)
	if got[0] != "a" || got[1] != "x" || got[2] != "b" {
		t.Fatalf("expected order [a x b]; got %v (plan %+v)", got, plan.RankByKey)
	}
}

func TestPlanSectionMove_MissingRow_Errors(t *testing.T) {
	entries := []model.SidebarEntry{entry("a", "c")}
	if _, err := PlanSectionMove(entries, noteRef("ghost"), 0); err == nil {
		t.Fatalf("expected error for row not in section")
	}
}

func TestPlanSectionInsert_AssignsRankAtEachPosition(t *testing.T) {
	entries := []model.SidebarEntry{
		entry("a", "c"),
		entry("b", "h"),
		entry("c", "s"),
	}
	for insertAt := 0; insertAt <= len(entries); insertAt++ {
		plan, err := PlanSectionInsert(entries, noteRef("x"), insertAt)
		if err != nil {
			t.Fatalf("PlanSectionInsert at %d: %v", insertAt, err)
		}
		r, ok := plan.RankByKey[refKey(noteRef("x"))]
		if !ok || r == "" {
			t.Fatalf("insert at %d: new row got no rank (plan %+v)", insertAt, plan.RankByKey)
		}
		inserted := append([]model.SidebarEntry{}, entries...)
		inserted = append(inserted, model.SidebarEntry{Ref: noteRef("x")})
		got := orderAfterPlan(t, inserted, plan)
		if got[insertAt] != "x" {
			t.Fatalf("insert at %d: expected x at that index, got order %v", insertAt, got)
		}
	}
}

func TestPlanSectionInsert_DuplicateRanks_FallsBack(t *testing.T) {
	entries := []model.SidebarEntry{
		entry("a", "m"),
		entry("b", "m"),
	}
	plan, err := PlanSectionInsert(entries, noteRef("x"), 1)
	if err != nil {
		t.Fatalf("PlanSectionInsert: %v", err)
	}
	if !plan.UsedFallback {
		t.Fatalf("expected fallback rebalance for duplicate neighbor ranks")
	}
	inserted := append([]model.SidebarEntry{}, entries...)
	inserted = append(inserted, model.SidebarEntry{Ref: noteRef("x")})
	got := orderAfterPlan(t, inserted, plan)
	if got[1] != "x" {
		t.Fatalf("expected x at index 1, got order %v", got)
	}
}

func TestPlanSectionInsert_AlreadyPresent_Errors(t *testing.T) {
	entries := []model.SidebarEntry{entry("a", "c")}
	if _, err := PlanSectionInsert(entries, noteRef("a"), 0); err == nil {
		t.Fatalf("expected error for inserting a row already in the section")
	}
}
