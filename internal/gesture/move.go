package gesture

import (
	"github.com/cwarden/verdandi/internal/schedule"
)

// MovePhase is the move-gesture machine's phase.
type MovePhase int

const (
	MoveIdle MovePhase = iota
	MoveDragging
)

// MoveState is the full snapshot published on every transition. The
// grab offset is where inside the glyph the pointer picked the event
// up, so the detached ghost tracks the pointer without jumping;
// OriginalWidth preserves the ghost's width while the event's home
// columns may be scrolled out of view.
type MoveState struct {
	Phase         MovePhase
	Event         schedule.Event
	GrabX         int
	GrabY         int
	OriginalWidth int
	PointerX      int
	PointerY      int
	DropAllowed   bool
}

// MoveMachine turns a drag-start/drag-over/drop sequence on an
// existing event into gesture state. Conflict gating and the actual
// relocation are the coordinator's job.
type MoveMachine struct {
	state  MoveState
	notify func(MoveState)
}

// NewMoveMachine creates an idle machine. notify receives every
// transition; nil disables notification.
func NewMoveMachine(notify func(MoveState)) *MoveMachine {
	return &MoveMachine{notify: notify}
}

// State returns the current snapshot.
func (m *MoveMachine) State() MoveState {
	return m.state
}

// Active reports whether a drag is in progress.
func (m *MoveMachine) Active() bool {
	return m.state.Phase == MoveDragging
}

// Start begins dragging an event. Ignored while a drag is already in
// progress.
func (m *MoveMachine) Start(ev schedule.Event, grabX, grabY, originalWidth, pointerX, pointerY int) {
	if m.state.Phase != MoveIdle {
		return
	}
	m.state = MoveState{
		Phase:         MoveDragging,
		Event:         ev,
		GrabX:         grabX,
		GrabY:         grabY,
		OriginalWidth: originalWidth,
		PointerX:      pointerX,
		PointerY:      pointerY,
		DropAllowed:   true,
	}
	m.publish()
}

// MoveTo repositions the ghost. Only position fields mutate; the
// gesture stays in MoveDragging.
func (m *MoveMachine) MoveTo(pointerX, pointerY int) {
	if m.state.Phase != MoveDragging {
		return
	}
	if m.state.PointerX == pointerX && m.state.PointerY == pointerY {
		return
	}
	m.state.PointerX = pointerX
	m.state.PointerY = pointerY
	m.publish()
}

// SetDropAllowed toggles the not-allowed indicator while hovering a
// drop target. Visual only; the drop itself re-runs the conflict
// check.
func (m *MoveMachine) SetDropAllowed(allowed bool) {
	if m.state.Phase != MoveDragging {
		return
	}
	if m.state.DropAllowed == allowed {
		return
	}
	m.state.DropAllowed = allowed
	m.publish()
}

// Finish ends the gesture, returning the final snapshot. Returns
// false when no drag was in progress. Used for both drop and
// drag-end; idempotent through the false return.
func (m *MoveMachine) Finish() (MoveState, bool) {
	if m.state.Phase != MoveDragging {
		return MoveState{}, false
	}
	final := m.state
	m.state = MoveState{}
	m.publish()
	return final, true
}

func (m *MoveMachine) publish() {
	if m.notify != nil {
		m.notify(m.state)
	}
}
