package gesture

// CreatePhase is the create-gesture machine's phase.
type CreatePhase int

const (
	CreateIdle CreatePhase = iota
	CreatePressed
	CreateDragging
)

// CreateState is the full snapshot published on every transition so
// the render layer can draw the live preview rectangle. Anchor is the
// column of the initial press; Current tracks the pointer.
type CreateState struct {
	Phase         CreatePhase
	ResourceID    string
	ResourceIndex int
	Anchor        int
	Current       int
}

// Columns returns the normalized inclusive column range [lo, hi]
// covered by the gesture. The committed interval is this range with
// the exclusive end advanced one bucket past hi.
func (s CreateState) Columns() (lo, hi int) {
	if s.Anchor <= s.Current {
		return s.Anchor, s.Current
	}
	return s.Current, s.Anchor
}

// CreateMachine turns a press/drag/release sequence over date cells
// into a committed column range or a cancellation. Preconditions
// (creation enabled, cell unoccupied) are the coordinator's job; the
// machine only sequences phases.
type CreateMachine struct {
	state  CreateState
	notify func(CreateState)
}

// NewCreateMachine creates an idle machine. notify receives every
// transition; nil disables notification.
func NewCreateMachine(notify func(CreateState)) *CreateMachine {
	return &CreateMachine{notify: notify}
}

// State returns the current snapshot.
func (m *CreateMachine) State() CreateState {
	return m.state
}

// Active reports whether a gesture is in progress.
func (m *CreateMachine) Active() bool {
	return m.state.Phase != CreateIdle
}

// Press anchors a new gesture on a cell. Ignored while a gesture is
// already in progress.
func (m *CreateMachine) Press(resourceID string, resourceIndex, columnIndex int) {
	if m.state.Phase != CreateIdle {
		return
	}
	m.state = CreateState{
		Phase:         CreatePressed,
		ResourceID:    resourceID,
		ResourceIndex: resourceIndex,
		Anchor:        columnIndex,
		Current:       columnIndex,
	}
	m.publish()
}

// MoveTo extends the gesture to the column under the pointer. The
// current column updates only on change, so subscribers are not
// notified redundantly; a move over an unresolvable cell is the
// coordinator's no-op, never reaching here.
func (m *CreateMachine) MoveTo(columnIndex int) {
	if m.state.Phase == CreateIdle {
		return
	}
	if m.state.Phase == CreatePressed {
		m.state.Phase = CreateDragging
		m.state.Current = columnIndex
		m.publish()
		return
	}
	if m.state.Current == columnIndex {
		return
	}
	m.state.Current = columnIndex
	m.publish()
}

// Commit ends the gesture, returning the final snapshot for interval
// conversion. Returns false when no gesture was in progress.
func (m *CreateMachine) Commit() (CreateState, bool) {
	if m.state.Phase == CreateIdle {
		return CreateState{}, false
	}
	final := m.state
	m.state = CreateState{}
	m.publish()
	return final, true
}

// Cancel resets to idle with no commit. Idempotent.
func (m *CreateMachine) Cancel() {
	if m.state.Phase == CreateIdle {
		return
	}
	m.state = CreateState{}
	m.publish()
}

func (m *CreateMachine) publish() {
	if m.notify != nil {
		m.notify(m.state)
	}
}
