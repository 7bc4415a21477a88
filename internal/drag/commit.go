package drag

import (
	"context"
	"fmt"

	"slate-cli/internal/model"
)

// SectionStore is the capability a committed drop mutates through. The
// engine never reads rows back; the host re-renders from its own store view
// after Apply returns.
type SectionStore interface {
	ReorderWithinSection(ctx context.Context, sec model.Section, from, to int) error
	MoveItemBetweenSections(ctx context.Context, ref model.ItemRef, from, to model.Section, localIndex int) error
	SectionLength(ctx context.Context, sec model.Section) (int, error)
}

// Commit is the planned outcome of one committed drop: the section mutation
// to issue plus what the settle animation needs. Target (and ToLocal) are
// rest indexes, i.e. where the row sits once the mutation has applied.
type Commit struct {
	Ref    model.ItemRef
	Source int
	Target int

	FromSection model.Section
	ToSection   model.Section
	FromLocal   int
	ToLocal     int

	// ResidualOffset is how far the held row sat from its destination slot
	// when the drop happened, in RowHeight units times RowHeight. Seeding the
	// row's settle offset with it keeps the grabbed row from snapping.
	ResidualOffset float64
	RowHeight      float64
}

// SameSection reports whether the drop stays within one section.
func (c Commit) SameSection() bool { return c.FromSection == c.ToSection }

// planCommit converts the session's unified indexes into a section mutation.
// ok=false means a no-op drop. Local indexes follow the splice mapping: the
// row is removed at Source, so for a pinned source the separator sits one
// slot earlier when the row re-enters; a unified target at the separator
// itself always means a crossing (end of pinned from below, start of recent
// from above).
func (e *Engine) planCommit() (Commit, bool) {
	s := e.session.SourceIndex
	t := e.session.TargetIndex
	if s == t {
		return Commit{}, false
	}
	k := e.layout.Separator()

	c := Commit{
		Ref:            e.session.SourceRef,
		Source:         s,
		Target:         t,
		ResidualOffset: e.session.PointerOffset - float64(t-s)*e.layout.RowHeight,
		RowHeight:      e.layout.RowHeight,
	}
	switch {
	case s < k && t < k:
		c.FromSection, c.ToSection = model.SectionPinned, model.SectionPinned
		c.FromLocal, c.ToLocal = s, t
	case s > k && t > k:
		c.FromSection, c.ToSection = model.SectionRecent, model.SectionRecent
		c.FromLocal, c.ToLocal = s-k-1, t-k-1
	case s < k:
		// Crossed down. Post-removal the separator is at k-1, so unified
		// target k is recent slot 0.
		c.FromSection, c.ToSection = model.SectionPinned, model.SectionRecent
		c.FromLocal, c.ToLocal = s, t-k
	default:
		// Crossed up. Unified target k appends at the end of pinned.
		c.FromSection, c.ToSection = model.SectionRecent, model.SectionPinned
		c.FromLocal, c.ToLocal = s-k-1, t
	}
	return c, true
}

// Apply issues the planned mutation against st. Section lengths are
// re-checked first: the plan was computed from a snapshot, and a store that
// changed underneath (another process, an eviction) must not turn the drop
// into an out-of-range reorder. The source slot must still hold a row; the
// destination slot is clamped, since any in-range slot is still the drop the
// user made. Apply never retries: on error the caller's safety cleanup is
// the recovery path.
func (c Commit) Apply(ctx context.Context, st SectionStore) error {
	fromLen, err := st.SectionLength(ctx, c.FromSection)
	if err != nil {
		return fmt.Errorf("drop %s/%s: %w", c.Ref.Kind, c.Ref.ID, err)
	}
	if c.FromLocal < 0 || c.FromLocal >= fromLen {
		return fmt.Errorf("drop %s/%s: source slot %d not in %s (%d rows)",
			c.Ref.Kind, c.Ref.ID, c.FromLocal, c.FromSection, fromLen)
	}
	if c.SameSection() {
		to := clampIndex(c.ToLocal, 0, fromLen-1)
		if err := st.ReorderWithinSection(ctx, c.FromSection, c.FromLocal, to); err != nil {
			return fmt.Errorf("drop %s/%s: %w", c.Ref.Kind, c.Ref.ID, err)
		}
		return nil
	}
	toLen, err := st.SectionLength(ctx, c.ToSection)
	if err != nil {
		return fmt.Errorf("drop %s/%s: %w", c.Ref.Kind, c.Ref.ID, err)
	}
	to := clampIndex(c.ToLocal, 0, toLen)
	if err := st.MoveItemBetweenSections(ctx, c.Ref, c.FromSection, c.ToSection, to); err != nil {
		return fmt.Errorf("drop %s/%s: %w", c.Ref.Kind, c.Ref.ID, err)
	}
	return nil
}
