package drag

import "math"

// Target resolution. Raw nearest-slot math flickers when the pointer hovers
// near a boundary, so slot changes are gated on the dragged row's edges
// instead of its center: moving down, the bottom edge must clear a boundary
// by the hysteresis band before the slot advances; moving up, the top edge
// must. Section crossings get a second, stricter gate on the separator slot.

// resolveTarget maps the session's pointer offset to a unified-list index.
// The result is always within [0, layout.Len()-1].
func (e *Engine) resolveTarget() int {
	h := e.layout.RowHeight
	off := e.session.PointerOffset
	s := e.session.SourceIndex
	k := e.layout.Separator()
	n := e.layout.Len()

	threshold := e.cfg.Hysteresis * h
	// The dragged row's live visual center.
	center := (float64(s)+0.5)*h + off

	var cand int
	switch {
	case off > 0:
		cand = int(math.Floor((center + h/2 - threshold) / h))
	case off < 0:
		cand = int(math.Floor((center - h/2 + threshold) / h))
	default:
		cand = s
	}
	cand = clampIndex(cand, 0, n-1)

	// Empty destination section: there is no row geometry for the edge
	// rules below, so entering the section's single-slot area by center is
	// the whole gate. The boundary slot wins over the generic candidate.
	if k == 0 && s > 0 && center < h {
		// Unified index 0 splices in ahead of the separator: pinned slot 0.
		return 0
	}
	if e.layout.RecentLen == 0 && s < k && center > float64(k)*h {
		// Unified index k (== n-1 here) splices in after the separator:
		// recent slot 0.
		return n - 1
	}

	// Section crossing: source and candidate on opposite sides of the
	// separator. The crossing is accepted on the leading edge, not the
	// center, and only once that edge is cfg.Crossing deep into the
	// separator slot; otherwise the target holds at the boundary so a
	// one-cell jiggle near the separator cannot flip sections.
	if s < k && cand >= k {
		bottom := center + h/2
		if bottom >= (float64(k)+e.cfg.Crossing)*h {
			return clampIndex(cand, k, n-1)
		}
		return k - 1 // hold at end of pinned
	}
	if s > k && cand <= k {
		top := center - h/2
		if top <= (float64(k)+1-e.cfg.Crossing)*h {
			return clampIndex(cand, 0, k)
		}
		return k + 1 // hold at start of recent
	}

	return cand
}

func clampIndex(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
