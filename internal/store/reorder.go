package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"slate-cli/internal/model"
)

// ReorderPlan describes the rank updates needed to realize an index-based
// sidebar move. RankByKey holds only rows whose ranks change, keyed by
// refKey. The fast path touches the moved row alone; the fallback rebalances
// the smallest contiguous window whose outer bounds are usable.
type ReorderPlan struct {
	RankByKey    map[string]string
	WindowKeys   []string
	UsedFallback bool
}

func refKey(r model.ItemRef) string {
	return string(r.Kind) + ":" + strings.TrimSpace(r.ID)
}

// sortEntriesByRank orders entries the way the sidebar displays them:
// rank lexicographic, then ref key for duplicate ranks.
func sortEntriesByRank(entries []model.SidebarEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri := strings.TrimSpace(entries[i].Rank)
		rj := strings.TrimSpace(entries[j].Rank)
		if ri != rj {
			return ri < rj
		}
		return refKey(entries[i].Ref) < refKey(entries[j].Ref)
	})
}

type rankRow struct {
	key  string
	rank string
}

// PlanSectionMove plans rank updates for moving an existing section row to
// insertAt, expressed in the coordinates of the section with the moved row
// removed. A same-position move yields an empty plan.
func PlanSectionMove(entries []model.SidebarEntry, moved model.ItemRef, insertAt int) (ReorderPlan, error) {
	if strings.TrimSpace(moved.ID) == "" {
		return ReorderPlan{}, errors.New("missing moved ref")
	}
	movedKey := refKey(moved)

	cur := append([]model.SidebarEntry{}, entries...)
	sortEntriesByRank(cur)

	movedIdx := -1
	for i := range cur {
		if refKey(cur[i].Ref) == movedKey {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return ReorderPlan{}, fmt.Errorf("moved row %s not in section", movedKey)
	}

	rest := make([]model.SidebarEntry, 0, len(cur)-1)
	for i := range cur {
		if i != movedIdx {
			rest = append(rest, cur[i])
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}

	curInsertAt := movedIdx
	if movedIdx > len(rest) {
		curInsertAt = len(rest)
	}
	if insertAt == curInsertAt {
		return ReorderPlan{RankByKey: map[string]string{}}, nil
	}
	// Moving up: prefer rebalancing to the right, toward the displaced rows.
	preferRight := insertAt < curInsertAt

	final := make([]rankRow, 0, len(cur))
	for _, e := range rest[:insertAt] {
		final = append(final, rankRow{key: refKey(e.Ref), rank: strings.TrimSpace(e.Rank)})
	}
	final = append(final, rankRow{key: movedKey, rank: strings.TrimSpace(cur[movedIdx].Rank)})
	for _, e := range rest[insertAt:] {
		final = append(final, rankRow{key: refKey(e.Ref), rank: strings.TrimSpace(e.Rank)})
	}

	return planRankUpdates(final, insertAt, preferRight, true)
}

// PlanSectionInsert plans ranks for inserting a row that is not yet in the
// section at insertAt. The returned plan always assigns the new row a rank.
func PlanSectionInsert(entries []model.SidebarEntry, ref model.ItemRef, insertAt int) (ReorderPlan, error) {
	key := refKey(ref)
	cur := append([]model.SidebarEntry{}, entries...)
	sortEntriesByRank(cur)
	for i := range cur {
		if refKey(cur[i].Ref) == key {
			return ReorderPlan{}, fmt.Errorf("row %s already in section", key)
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(cur) {
		insertAt = len(cur)
	}

	final := make([]rankRow, 0, len(cur)+1)
	for _, e := range cur[:insertAt] {
		final = append(final, rankRow{key: refKey(e.Ref), rank: strings.TrimSpace(e.Rank)})
	}
	final = append(final, rankRow{key: key})
	for _, e := range cur[insertAt:] {
		final = append(final, rankRow{key: refKey(e.Ref), rank: strings.TrimSpace(e.Rank)})
	}

	return planRankUpdates(final, insertAt, false, false)
}

func planRankUpdates(final []rankRow, movedIdx int, preferRight, skipUnchanged bool) (ReorderPlan, error) {
	// Fast path: a usable gap between the immediate neighbors.
	existing := existingRanksExcluding(final, map[string]bool{final[movedIdx].key: true})
	if r, ok := rankBetweenNeighbors(existing, final, movedIdx); ok {
		if skipUnchanged && final[movedIdx].rank == r {
			return ReorderPlan{RankByKey: map[string]string{}}, nil
		}
		return ReorderPlan{RankByKey: map[string]string{final[movedIdx].key: r}}, nil
	}

	// Fallback: rebalance a minimal window around the insertion point.
	lo, hi := minimalValidWindow(final, movedIdx, preferRight)

	lower := ""
	upper := ""
	if lo > 0 {
		lower = final[lo-1].rank
	}
	if hi+1 < len(final) {
		upper = final[hi+1].rank
	}

	excl := map[string]bool{}
	for i := lo; i <= hi; i++ {
		excl[final[i].key] = true
	}
	existing = existingRanksExcluding(final, excl)

	plan := ReorderPlan{
		RankByKey:    map[string]string{},
		WindowKeys:   make([]string, 0, hi-lo+1),
		UsedFallback: true,
	}
	curLower := lower
	for i := lo; i <= hi; i++ {
		r, err := RankBetweenUnique(existing, curLower, upper)
		if err != nil {
			return ReorderPlan{}, err
		}
		existing[strings.ToLower(r)] = true
		plan.RankByKey[final[i].key] = r
		plan.WindowKeys = append(plan.WindowKeys, final[i].key)
		curLower = r
	}
	return plan, nil
}

func existingRanksExcluding(rows []rankRow, excludeKeys map[string]bool) map[string]bool {
	existing := map[string]bool{}
	for _, r := range rows {
		if excludeKeys != nil && excludeKeys[r.key] {
			continue
		}
		rn := strings.ToLower(strings.TrimSpace(r.rank))
		if rn != "" {
			existing[rn] = true
		}
	}
	return existing
}

// rankBetweenNeighbors tries the immediate-neighbor bounds around movedIdx.
// ok=false means the bounds are unusable (duplicate or inverted ranks) and
// the caller must rebalance.
func rankBetweenNeighbors(existing map[string]bool, final []rankRow, movedIdx int) (string, bool) {
	lower := ""
	upper := ""
	if movedIdx > 0 {
		lower = final[movedIdx-1].rank
	}
	if movedIdx+1 < len(final) {
		upper = final[movedIdx+1].rank
	}
	if lower != "" && upper != "" && !(lower < upper) {
		return "", false
	}
	r, err := RankBetweenUnique(existing, lower, upper)
	if err != nil {
		return "", false
	}
	return r, true
}

// minimalValidWindow finds the smallest [lo, hi] containing movedIdx whose
// outer bounds admit new ranks between them. preferRight breaks ties toward
// windows extending right of movedIdx.
func minimalValidWindow(final []rankRow, movedIdx int, preferRight bool) (int, int) {
	if movedIdx < 0 || movedIdx >= len(final) {
		return 0, len(final) - 1
	}

	valid := func(lo, hi int) bool {
		lower := ""
		upper := ""
		if lo > 0 {
			lower = final[lo-1].rank
		}
		if hi+1 < len(final) {
			upper = final[hi+1].rank
		}
		if lower != "" && upper != "" && !(lower < upper) {
			return false
		}
		if upper == "" {
			// Open above: ranks can always extend upward.
			return true
		}
		// String order alone is not enough: prefix-adjacent bounds like "y"
		// and "y0" admit no rank between them, and nothing sorts below an
		// all-zeros upper bound. One successful midpoint means the gap fits
		// arbitrarily many.
		_, err := RankBetween(lower, upper)
		return err == nil
	}

	for size := 1; size <= len(final); size++ {
		startMin := movedIdx - (size - 1)
		if startMin < 0 {
			startMin = 0
		}
		startMax := movedIdx
		if startMax+size > len(final) {
			startMax = len(final) - size
		}
		if preferRight {
			for lo := startMax; lo >= startMin; lo-- {
				hi := lo + size - 1
				if lo <= movedIdx && movedIdx <= hi && valid(lo, hi) {
					return lo, hi
				}
			}
		} else {
			for lo := startMin; lo <= startMax; lo++ {
				hi := lo + size - 1
				if lo <= movedIdx && movedIdx <= hi && valid(lo, hi) {
					return lo, hi
				}
			}
		}
	}
	return 0, len(final) - 1
}
