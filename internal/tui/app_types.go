package tui

import "time"

type focusArea int

const (
	focusSidebar focusArea = iota
	focusPreview
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewNote
	modalRename
	modalConfirmDelete
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// reloadTickMsg drives the periodic pick-up of store changes made by other
// processes (CLI commands in another terminal).
type reloadTickMsg struct{}

// animTickMsg advances the settle animation. All animation messages carry
// their emission time so tests can forge instants.
type animTickMsg struct {
	seq int
	at  time.Time
}

// animCleanupMsg fires at the safety deadline; if the animation is still
// running by then, the engine is force-reset.
type animCleanupMsg struct {
	seq int
	at  time.Time
}

// statusClearMsg expires a transient status-line message.
type statusClearMsg struct {
	seq int
}
