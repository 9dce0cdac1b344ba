// Package gesture implements the interaction engine of the scheduling
// grid: the create and move gesture state machines, the edge-triggered
// auto-scroll controller, and the coordinator that owns them. All
// transitions happen on discrete input callbacks or frame ticks on one
// goroutine; within a callback, state updates and subscriber
// notification complete before the callback returns.
package gesture

// InputKind is one step of the normalized pointer/drag stream. Native
// drag events have no move primitive; the front end synthesizes
// InputMove from motion while a gesture is active, so the machines see
// one uniform stream.
type InputKind int

const (
	InputPress InputKind = iota
	InputMove
	InputRelease
	InputDragStart
	InputDragOver
	InputDragLeave
	InputDrop
	InputDragEnd
)

func (k InputKind) String() string {
	switch k {
	case InputPress:
		return "press"
	case InputMove:
		return "move"
	case InputRelease:
		return "release"
	case InputDragStart:
		return "dragstart"
	case InputDragOver:
		return "dragover"
	case InputDragLeave:
		return "dragleave"
	case InputDrop:
		return "drop"
	case InputDragEnd:
		return "dragend"
	}
	return "unknown"
}

// Input is one normalized pointer event in viewport coordinates.
type Input struct {
	Kind InputKind
	X    int
	Y    int
}
