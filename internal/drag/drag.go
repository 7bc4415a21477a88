// Package drag implements the sidebar's reorder engine: it tracks one drag
// gesture at a time over a unified list (pinned rows, a separator row, recent
// rows), resolves the slot the dragged row would land in, and plans the
// durable mutation plus the settle animation for a drop.
//
// The package is pure gesture math. It never touches the terminal or the
// database; the host feeds it pointer samples and executes planned commits
// through the SectionStore capability.
package drag

import (
	"time"

	"slate-cli/internal/model"
)

// Engine geometry is float64 in row-height units so the math stays agnostic
// of what a "pixel" is. The TUI feeds terminal cells with RowHeight = 1.

// Config holds the tunable gesture constants. The fractions are hand-tuned
// for perceived stability, not derived; keep them configurable and validate
// changes against the hysteresis tests.
type Config struct {
	// Hysteresis is the dead band around a slot boundary, as a fraction of
	// row height. Within it small pointer moves do not change the target.
	Hysteresis float64
	// Crossing is how far (fraction of the separator slot) the dragged
	// row's edge must travel before a section crossing is accepted.
	Crossing float64
	// Duration is the settle animation length after a committed drop.
	Duration time.Duration
	// SafetyMargin is added to Duration for the cleanup deadline that
	// recovers from a missed animation-done signal.
	SafetyMargin time.Duration
}

// DefaultConfig returns the stock gesture constants.
func DefaultConfig() Config {
	return Config{
		Hysteresis:   0.2,
		Crossing:     0.8,
		Duration:     200 * time.Millisecond,
		SafetyMargin: 500 * time.Millisecond,
	}
}

// normalized replaces out-of-range values with the defaults. A hysteresis
// band of half a row or more would make neighboring slots unreachable, and a
// crossing fraction outside (0,1] has no geometric meaning.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Hysteresis < 0 || c.Hysteresis >= 0.5 {
		c.Hysteresis = d.Hysteresis
	}
	if c.Crossing <= 0 || c.Crossing > 1 {
		c.Crossing = d.Crossing
	}
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.SafetyMargin <= 0 {
		c.SafetyMargin = d.SafetyMargin
	}
	return c
}

// Deadline returns the instant by which cleanup must have run for an
// animation started at start.
func (c Config) Deadline(start time.Time) time.Time {
	return start.Add(c.Duration + c.SafetyMargin)
}

// Phase is the engine's lifecycle state. Committing and animating exist only
// as a pair: a drop either skips both (no-op) or passes through both.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitting
	PhaseAnimating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseCommitting:
		return "committing"
	case PhaseAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Layout is the unified-list geometry captured once per gesture. Indexes
// 0..PinnedLen-1 are pinned rows, PinnedLen is the separator row, and the
// remaining RecentLen indexes are recent rows.
type Layout struct {
	PinnedLen int
	RecentLen int
	// RowHeight is measured once at drag start and never re-queried during
	// the gesture. It must be > 0 or the gesture is refused.
	RowHeight float64
}

// Len returns the unified list length including the separator row.
func (l Layout) Len() int { return l.PinnedLen + l.RecentLen + 1 }

// Separator returns the separator row's unified index.
func (l Layout) Separator() int { return l.PinnedLen }

// Session is the transient state of one gesture. SourceIndex is fixed at
// Begin; TargetIndex is recomputed on every valid pointer sample.
type Session struct {
	SourceIndex   int
	SourceRef     model.ItemRef
	PointerStart  float64
	PointerOffset float64
	TargetIndex   int
}

// Engine runs at most one Session at a time. It is not safe for concurrent
// use; the host's single event loop is the intended caller.
type Engine struct {
	cfg     Config
	phase   Phase
	layout  Layout
	session Session

	// lockedAt anchors the cleanup deadline while committing; animStart
	// re-anchors it once the settle animation actually starts.
	lockedAt  time.Time
	animStart time.Time

	now func() time.Time
}

// New returns an idle engine with cfg normalized to sane values.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.normalized(), now: time.Now}
}

func (e *Engine) Config() Config   { return e.cfg }
func (e *Engine) Phase() Phase     { return e.phase }
func (e *Engine) Layout() Layout   { return e.layout }
func (e *Engine) Session() Session { return e.session }

// Dragging reports whether a gesture is in flight.
func (e *Engine) Dragging() bool { return e.phase == PhaseDragging }

// Locked reports whether list interaction must stay disabled. The lock is
// the mutual exclusion for commits: no new gesture may begin until the
// settle animation has been cleaned up.
func (e *Engine) Locked() bool {
	return e.phase == PhaseCommitting || e.phase == PhaseAnimating
}

// Begin starts a session for the row at sourceIndex, grabbed at pointerStart.
// It refuses (returns false) when the measured row height is unusable, the
// index does not name a draggable row, or a commit is still settling. A
// Begin that arrives while a previous gesture is still in the dragging phase
// implicitly cancels it first; the platform can drop a release event, and a
// stale session must not wedge the list.
func (e *Engine) Begin(lay Layout, sourceIndex int, ref model.ItemRef, pointerStart float64) bool {
	if e.Locked() {
		return false
	}
	if e.phase == PhaseDragging {
		e.Reset()
	}
	// Zero or negative height would turn every index computation into a
	// divide-by-zero equivalent. Measurement failure means no session.
	if lay.RowHeight <= 0 {
		return false
	}
	if lay.PinnedLen < 0 || lay.RecentLen < 0 {
		return false
	}
	if sourceIndex < 0 || sourceIndex >= lay.Len() || sourceIndex == lay.Separator() {
		return false
	}
	e.layout = lay
	e.session = Session{
		SourceIndex:  sourceIndex,
		SourceRef:    ref,
		PointerStart: pointerStart,
		TargetIndex:  sourceIndex,
	}
	e.phase = PhaseDragging
	return true
}

// Update feeds one pointer sample and reports whether the resolved target
// changed. A pointerY of exactly 0 is the platform sentinel for "position
// unknown" (the pointer left every valid region); such samples are dropped
// and the previous offset stays intact. Samples while no gesture is active
// are ignored.
func (e *Engine) Update(pointerY float64) bool {
	if e.phase != PhaseDragging {
		return false
	}
	if pointerY == 0 {
		return false
	}
	e.session.PointerOffset = pointerY - e.session.PointerStart
	prev := e.session.TargetIndex
	e.session.TargetIndex = e.resolveTarget()
	return e.session.TargetIndex != prev
}

// End finishes the gesture. committed=false is a cancellation: the session
// is discarded, nothing mutates, and the engine returns to idle immediately.
// committed=true plans the drop; ok=false means a no-op drop (target equals
// source, or no gesture was active) and the engine is already idle again.
// On ok=true the engine enters the committing phase and stays locked until
// FinishAnimation or Reset runs.
//
// Calling End twice is safe: the second call finds no active gesture and is
// a no-op.
func (e *Engine) End(committed bool) (Commit, bool) {
	if e.phase != PhaseDragging {
		return Commit{}, false
	}
	if !committed {
		e.Reset()
		return Commit{}, false
	}
	c, ok := e.planCommit()
	if !ok {
		e.Reset()
		return Commit{}, false
	}
	e.phase = PhaseCommitting
	e.lockedAt = e.now()
	return c, true
}

// StartAnimation moves committing into animating once the mutated order has
// rendered with its snap offsets applied. It returns the cleanup deadline.
// Calling it in any other phase changes nothing.
func (e *Engine) StartAnimation(at time.Time) time.Time {
	if e.phase != PhaseCommitting {
		return e.cfg.Deadline(at)
	}
	e.phase = PhaseAnimating
	e.animStart = at
	return e.cfg.Deadline(at)
}

// Progress returns the eased settle progress in [0,1] at the given instant.
// Outside the animating phase it reports 1 so stale ticks render rows at
// rest.
func (e *Engine) Progress(at time.Time) float64 {
	if e.phase != PhaseAnimating {
		return 1
	}
	elapsed := at.Sub(e.animStart)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= e.cfg.Duration {
		return 1
	}
	return easeOut(float64(elapsed) / float64(e.cfg.Duration))
}

// CleanupDue reports whether the safety deadline has passed without the
// animation finishing. It is the sole recovery path for a stuck animation
// (and for a commit whose animation never started, e.g. after a mutation
// failure): the host must call Reset when this turns true.
func (e *Engine) CleanupDue(at time.Time) bool {
	switch e.phase {
	case PhaseCommitting:
		return !at.Before(e.cfg.Deadline(e.lockedAt))
	case PhaseAnimating:
		return !at.Before(e.cfg.Deadline(e.animStart))
	default:
		return false
	}
}

// FinishAnimation completes a settle normally and returns to idle. It is a
// no-op unless the engine is animating.
func (e *Engine) FinishAnimation() {
	if e.phase != PhaseAnimating {
		return
	}
	e.Reset()
}

// Reset forces the engine back to idle from any phase, discarding session
// state. Every failure path funnels here so the list can never stay
// non-interactive. Resetting an idle engine is a no-op.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.layout = Layout{}
	e.session = Session{}
	e.lockedAt = time.Time{}
	e.animStart = time.Time{}
}
