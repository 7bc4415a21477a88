package drag

import "testing"

// resolveAt runs one gesture to the given offset and returns the resolved
// target. Row height is 1, so offsets read as rows.
func resolveAt(t *testing.T, lay Layout, src int, off float64) int {
	t.Helper()
	e := New(DefaultConfig())
	start := (float64(src) + 0.5) * lay.RowHeight
	mustBegin(t, e, lay, src, start)
	e.Update(start + off)
	return e.Session().TargetIndex
}

func TestResolveNoMovement(t *testing.T) {
	e := New(DefaultConfig())
	mustBegin(t, e, testLayout(2, 3), 3, 3.5)
	if got := e.Session().TargetIndex; got != 3 {
		t.Fatalf("target at begin = %d; want source 3", got)
	}
}

func TestResolveSameSectionBoundaries(t *testing.T) {
	// pinned A B C | sep | recent D E; dragging A down within pinned.
	lay := testLayout(3, 2)
	tests := []struct {
		off  float64
		want int
	}{
		{0.0, 0},
		{0.19, 0},  // inside the hysteresis band
		{0.20, 1},  // band cleared
		{1.19, 1},
		{1.20, 2},
	}
	for _, tt := range tests {
		if got := resolveAt(t, lay, 0, tt.off); got != tt.want {
			t.Fatalf("off=%v: target = %d; want %d", tt.off, got, tt.want)
		}
	}

	// Dragging E up within recent (unified 5 -> 4).
	up := []struct {
		off  float64
		want int
	}{
		{-0.20, 5},
		{-0.21, 4},
	}
	for _, tt := range up {
		if got := resolveAt(t, lay, 5, tt.off); got != tt.want {
			t.Fatalf("up off=%v: target = %d; want %d", tt.off, got, tt.want)
		}
	}
}

func TestResolveClampInvariant(t *testing.T) {
	layouts := []Layout{
		testLayout(2, 3),
		testLayout(0, 3),
		testLayout(2, 0),
		testLayout(1, 1),
		{PinnedLen: 2, RecentLen: 3, RowHeight: 2.5},
	}
	offsets := []float64{-1e9, -37.2, -6, -1.0001, -0.5, 0.25, 0.999, 4, 123.456, 1e9}
	for _, lay := range layouts {
		n := lay.Len()
		for src := 0; src < n; src++ {
			if src == lay.Separator() {
				continue
			}
			for _, off := range offsets {
				got := resolveAt(t, lay, src, off*lay.RowHeight)
				if got < 0 || got > n-1 {
					t.Fatalf("layout %+v src=%d off=%v: target %d out of [0,%d]", lay, src, off, got, n-1)
				}
			}
		}
	}
}

func TestResolveHysteresisStability(t *testing.T) {
	// Small same-direction pointer deltas must never make the target
	// oscillate. Sweep down in fine steps and require a monotone target.
	lay := testLayout(3, 2)
	e := New(DefaultConfig())
	mustBegin(t, e, lay, 0, 0.5)
	prev := e.Session().TargetIndex
	for off := 0.0; off <= 2.0; off += 0.01 {
		e.Update(0.5 + off)
		got := e.Session().TargetIndex
		if got < prev {
			t.Fatalf("target regressed from %d to %d at off=%v while moving down", prev, got, off)
		}
		prev = got
	}

	// Hovering inside the band on either side of a boundary holds steady.
	for off := 0.02; off <= 0.18; off += 0.02 {
		if got := resolveAt(t, lay, 1, off); got != 1 {
			t.Fatalf("off=%v inside band moved target to %d", off, got)
		}
	}
	for off := 0.22; off <= 0.38; off += 0.02 {
		if got := resolveAt(t, lay, 1, off); got != 2 {
			t.Fatalf("off=%v past band resolved %d; want 2", off, got)
		}
	}
}

func TestResolveCrossingDownHoldsUntilDeepEnough(t *testing.T) {
	// pinned A B | sep | recent C D E. Dragging A down: the candidate slot
	// crosses the separator well before the row's bottom edge is 80% into
	// it; until then the target holds at the end of pinned.
	lay := testLayout(2, 3)
	tests := []struct {
		off  float64
		want int
	}{
		{1.3, 1},  // candidate crossed, edge not deep enough: hold at end of pinned
		{1.7, 1},
		{1.8, 2},  // bottom edge at (k+0.8)h: crossing accepted, recent slot 0
		{3.5, 4},  // between D and E
		{9.0, 5},  // clamped to the last slot
	}
	for _, tt := range tests {
		if got := resolveAt(t, lay, 0, tt.off); got != tt.want {
			t.Fatalf("off=%v: target = %d; want %d", tt.off, got, tt.want)
		}
	}
}

func TestResolveCrossingUpHoldsUntilDeepEnough(t *testing.T) {
	// Dragging D (unified 4) up toward pinned; the top edge must enter the
	// separator slot's top band before the crossing is accepted.
	lay := testLayout(2, 3)
	tests := []struct {
		off  float64
		want int
	}{
		{-1.0, 3},  // plain within-recent move
		{-1.5, 3},  // candidate crossed, edge too shallow: hold at start of recent
		{-1.8, 2},  // top edge at (k+0.2)h: accepted, end of pinned
		{-9.0, 0},  // clamped to the first slot
	}
	for _, tt := range tests {
		if got := resolveAt(t, lay, 4, tt.off); got != tt.want {
			t.Fatalf("off=%v: target = %d; want %d", tt.off, got, tt.want)
		}
	}
}

func TestResolveEmptyPinnedOverride(t *testing.T) {
	// No pinned rows: sep | C D E. Dragging C up into the pinned area
	// forces slot 0 as soon as the row's center enters it.
	lay := testLayout(0, 3)
	if got := resolveAt(t, lay, 1, -0.9); got != 0 {
		t.Fatalf("center inside empty pinned area resolved %d; want 0", got)
	}
	if got := resolveAt(t, lay, 1, -0.2); got != 1 {
		t.Fatalf("center outside empty pinned area resolved %d; want 1", got)
	}
}

func TestResolveEmptyRecentOverride(t *testing.T) {
	// pinned A B | sep, no recent rows. The override keys on the center
	// entering the empty section's area and beats the edge-based crossing
	// hold.
	lay := testLayout(2, 0)
	if got := resolveAt(t, lay, 0, 1.6); got != 2 {
		t.Fatalf("center inside empty recent area resolved %d; want 2", got)
	}
	if got := resolveAt(t, lay, 0, 1.2); got != 1 {
		t.Fatalf("center outside empty recent area resolved %d; want 1", got)
	}
}

func TestResolveFractionalRowHeight(t *testing.T) {
	// The math is unit-agnostic: same gesture, rows 2.5 units tall.
	lay := Layout{PinnedLen: 2, RecentLen: 3, RowHeight: 2.5}
	if got := resolveAt(t, lay, 0, 3.5*2.5); got != 4 {
		t.Fatalf("scaled drag resolved %d; want 4", got)
	}
	if got := resolveAt(t, lay, 0, 0.19*2.5); got != 0 {
		t.Fatalf("scaled in-band drag resolved %d; want 0", got)
	}
}
