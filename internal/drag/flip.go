package drag

import (
	"math"

	"slate-cli/internal/model"
)

// Settle-animation helpers. The host records the unified order before a
// commit, re-reads it after, and seeds every displaced row with an offset
// back to its old slot; the render loop then eases the offsets to zero so
// the layout change reads as movement instead of a jump.

// Separator is the sentinel occupying the separator slot in unified orders.
// The zero ItemRef never names a stored row.
var Separator = model.ItemRef{}

// Unified returns the display order the engine's index math runs over:
// pinned rows, the separator sentinel, recent rows.
func Unified(pinned, recent []model.ItemRef) []model.ItemRef {
	out := make([]model.ItemRef, 0, len(pinned)+len(recent)+1)
	out = append(out, pinned...)
	out = append(out, Separator)
	out = append(out, recent...)
	return out
}

// SpliceMove returns a copy of order with the row at from removed and
// re-inserted so it rests at index to. Out-of-range indexes are clamped.
func SpliceMove(order []model.ItemRef, from, to int) []model.ItemRef {
	n := len(order)
	out := make([]model.ItemRef, 0, n)
	out = append(out, order...)
	if n == 0 {
		return out
	}
	from = clampIndex(from, 0, n-1)
	to = clampIndex(to, 0, n-1)
	if from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]model.ItemRef{moved}, out[to:]...)...)
	return out
}

// Offsets returns the starting settle offset for every row whose slot
// changed between prev and next: (old index - new index) * rowHeight. Rows
// that kept their slot, and rows absent from prev, start at rest and are not
// in the map. The held row's entry should be overwritten with the commit's
// ResidualOffset so it glides from where it was dropped.
func Offsets(prev, next []model.ItemRef, rowHeight float64) map[model.ItemRef]float64 {
	old := make(map[model.ItemRef]int, len(prev))
	for i, r := range prev {
		old[r] = i
	}
	out := make(map[model.ItemRef]float64)
	for i, r := range next {
		oi, ok := old[r]
		if !ok || oi == i {
			continue
		}
		out[r] = float64(oi-i) * rowHeight
	}
	return out
}

// Displace converts a row's starting offset into its current displacement in
// whole rows for the given eased progress.
func Displace(offset, progress float64) int {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return int(math.Round(offset * (1 - progress)))
}

// easeOut is the settle curve: fast start, soft landing.
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
