package gesture

import (
	"testing"
	"time"

	"github.com/cwarden/verdandi/internal/schedule"
)

func testEvent() schedule.Event {
	return schedule.Event{
		ID:         "e1",
		ResourceID: "r1",
		Start:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local),
		End:        time.Date(2026, 1, 3, 0, 0, 0, 0, time.Local),
		Title:      "Review",
	}
}

func TestMoveMachineLifecycle(t *testing.T) {
	var published []MoveState
	m := NewMoveMachine(func(s MoveState) {
		published = append(published, s)
	})

	m.Start(testEvent(), 3, 1, 8, 20, 5)
	got := m.State()
	if got.Phase != MoveDragging || got.Event.ID != "e1" {
		t.Fatalf("after start: %+v", got)
	}
	if got.GrabX != 3 || got.GrabY != 1 || got.OriginalWidth != 8 {
		t.Errorf("grab geometry = %+v", got)
	}
	if !got.DropAllowed {
		t.Error("drop should start allowed")
	}

	m.MoveTo(25, 6)
	if got := m.State(); got.PointerX != 25 || got.PointerY != 6 {
		t.Errorf("after move: %+v", got)
	}

	// Unchanged position: no notification
	before := len(published)
	m.MoveTo(25, 6)
	if len(published) != before {
		t.Error("repeated position must not republish")
	}

	final, ok := m.Finish()
	if !ok {
		t.Fatal("finish should succeed")
	}
	if final.PointerX != 25 || final.Event.ID != "e1" {
		t.Errorf("final = %+v", final)
	}
	if m.Active() {
		t.Error("machine should be idle after finish")
	}
}

func TestMoveMachineFinishIdempotent(t *testing.T) {
	m := NewMoveMachine(nil)
	m.Start(testEvent(), 0, 0, 8, 10, 3)

	if _, ok := m.Finish(); !ok {
		t.Fatal("first finish should succeed")
	}
	if _, ok := m.Finish(); ok {
		t.Error("second finish must report no gesture")
	}
}

func TestMoveMachineSetDropAllowed(t *testing.T) {
	calls := 0
	m := NewMoveMachine(func(MoveState) { calls++ })

	// Ignored while idle
	m.SetDropAllowed(false)
	if calls != 0 {
		t.Error("SetDropAllowed on idle machine must not publish")
	}

	m.Start(testEvent(), 0, 0, 8, 10, 3)
	calls = 0

	m.SetDropAllowed(false)
	if m.State().DropAllowed {
		t.Error("DropAllowed should be false")
	}
	if calls != 1 {
		t.Errorf("toggle published %d times, want 1", calls)
	}

	// Same value again: no notification
	m.SetDropAllowed(false)
	if calls != 1 {
		t.Errorf("redundant toggle published, calls = %d", calls)
	}

	m.SetDropAllowed(true)
	if !m.State().DropAllowed {
		t.Error("DropAllowed should be true again")
	}
}

func TestMoveMachineStartWhileActive(t *testing.T) {
	m := NewMoveMachine(nil)
	m.Start(testEvent(), 0, 0, 8, 10, 3)

	other := testEvent()
	other.ID = "e2"
	m.Start(other, 1, 1, 4, 50, 9)

	if got := m.State(); got.Event.ID != "e1" {
		t.Errorf("second start must be ignored, dragging %s", got.Event.ID)
	}
}
