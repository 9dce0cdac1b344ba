package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwarden/verdandi/internal/config"
	"github.com/cwarden/verdandi/internal/gesture"
	"github.com/cwarden/verdandi/internal/schedule"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ScheduleFiles = nil // no disk access in tests
	cfg.AutoRefresh = false
	return cfg
}

// testModel builds a model over two resources with one event pinned to
// today's column for resource r1.
func testModel(t *testing.T) *Model {
	t.Helper()
	today := schedule.TruncateBucket(time.Now(), schedule.Day)
	sched := &schedule.Schedule{
		Resources: []schedule.Resource{
			{ID: "r1", Title: "Alice"},
			{ID: "r2", Title: "Bob"},
		},
		Events: []schedule.Event{
			{ID: "e1", ResourceID: "r1", Start: today, End: today.AddDate(0, 0, 2), Title: "Sprint"},
		},
	}
	m := NewModel(testConfig(), sched)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

// todayColumn finds the visible column index holding today.
func todayColumn(t *testing.T, m *Model) int {
	t.Helper()
	today := schedule.TruncateBucket(time.Now(), m.gran)
	for i, c := range m.coord.Columns() {
		if schedule.BucketKey(c) == schedule.BucketKey(today) {
			return i
		}
	}
	t.Fatal("today's column not visible")
	return -1
}

// colX converts a column index to a viewport x coordinate.
func (m *Model) colX(col int) int {
	return m.config.GutterWidth + col*m.config.ColumnWidth - m.coord.XOffset()
}

func press(m *Model, x, y int) {
	m.handleMouse(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(m *Model, x, y int) {
	m.handleMouse(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
}

func release(m *Model, x, y int) {
	m.handleMouse(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

// TestMouseCreateFlow presses an empty cell, drags across columns, and
// releases: the title editor opens with the committed interval.
func TestMouseCreateFlow(t *testing.T) {
	m := testModel(t)
	tc := todayColumn(t, m)
	cols := m.coord.Columns()

	// Row 1 (Bob) is empty everywhere
	y := 1
	press(m, m.colX(tc+3), y+2)
	if got := m.coord.CreateState(); got.Phase != gesture.CreatePressed || got.ResourceID != "r2" {
		t.Fatalf("after press: %+v", got)
	}
	if m.selectedRow != 1 || m.selectedCol != tc+3 {
		t.Errorf("selection = (%d, %d), want (1, %d)", m.selectedRow, m.selectedCol, tc+3)
	}

	motion(m, m.colX(tc+5), y+2)
	release(m, m.colX(tc+5), y+2)

	if m.mode != ViewEventEditor {
		t.Fatal("release should open the event editor")
	}
	if m.pendingResource != "r2" {
		t.Errorf("pending resource = %s, want r2", m.pendingResource)
	}
	if !m.pendingStart.Equal(cols[tc+3]) || !m.pendingEnd.Equal(cols[tc+6]) {
		t.Errorf("pending interval = [%v, %v), want 3 columns from %v",
			m.pendingStart, m.pendingEnd, cols[tc+3])
	}
}

func TestEditorAddsEvent(t *testing.T) {
	m := testModel(t)
	tc := todayColumn(t, m)
	cols := m.coord.Columns()

	m.collectEventDetails("r2", cols[tc], cols[tc+1])

	for _, r := range "Standup" {
		m.handleEditorKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.handleEditorKeys(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ViewGrid {
		t.Error("editor should close on enter")
	}
	if len(m.events) != 2 {
		t.Fatalf("got %d events, want 2", len(m.events))
	}
	added := m.events[1]
	if added.Title != "Standup" || added.ResourceID != "r2" || added.ID == "" {
		t.Errorf("added = %+v", added)
	}
	if !m.coord.Index().Occupied("r2", cols[tc]) {
		t.Error("new event should be in the rebuilt index")
	}
}

func TestEditorEscapeDiscards(t *testing.T) {
	m := testModel(t)
	cols := m.coord.Columns()

	m.collectEventDetails("r2", cols[0], cols[1])
	m.handleEditorKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m.handleEditorKeys(tea.KeyMsg{Type: tea.KeyEscape})

	if m.mode != ViewGrid || len(m.events) != 1 {
		t.Error("escape must discard the pending event")
	}
}

// TestMouseDragFlow picks the glyph up, drags it to the other row, and
// drops it: the event moves with its duration intact.
func TestMouseDragFlow(t *testing.T) {
	m := testModel(t)
	tc := todayColumn(t, m)
	cols := m.coord.Columns()

	// Press lands on e1's glyph and becomes a drag, not a create
	press(m, m.colX(tc), 1)
	if got := m.coord.MoveState(); got.Phase != gesture.MoveDragging || got.Event.ID != "e1" {
		t.Fatalf("after press on glyph: %+v", got)
	}
	if m.coord.CreateState().Phase != gesture.CreateIdle {
		t.Error("glyph press must not start a create gesture")
	}

	motion(m, m.colX(tc+4), 3)
	release(m, m.colX(tc+4), 3)

	if m.coord.MoveState().Phase != gesture.MoveIdle {
		t.Error("gesture should be torn down after the drop")
	}
	moved := m.events[0]
	if moved.ResourceID != "r2" {
		t.Errorf("event on %s, want r2", moved.ResourceID)
	}
	if !moved.Start.Equal(cols[tc+4]) || moved.End.Sub(moved.Start) != 48*time.Hour {
		t.Errorf("moved to [%v, %v), want 2 days at %v", moved.Start, moved.End, cols[tc+4])
	}
}

func TestWheelScrollsColumns(t *testing.T) {
	m := testModel(t)

	m.handleMouse(tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelRight})
	if m.coord.XOffset() != m.config.ColumnWidth {
		t.Errorf("xOffset = %d after wheel right, want %d", m.coord.XOffset(), m.config.ColumnWidth)
	}
	m.handleMouse(tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelLeft})
	if m.coord.XOffset() != 0 {
		t.Errorf("xOffset = %d after wheel left, want 0", m.coord.XOffset())
	}
}

func TestGranularityCycle(t *testing.T) {
	m := testModel(t)

	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if m.gran != schedule.Month {
		t.Fatalf("granularity = %v after one cycle, want month", m.gran)
	}
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if m.gran != schedule.Day {
		t.Errorf("granularity = %v after full cycle, want day", m.gran)
	}
}

func TestNewEventKeyConflict(t *testing.T) {
	m := testModel(t)
	tc := todayColumn(t, m)

	// Selected cell sits on e1: the editor must not open
	m.selectedRow = 0
	m.selectedCol = tc
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.mode == ViewEventEditor {
		t.Error("occupied cell must not open the editor")
	}

	// A free cell does
	m.selectedRow = 1
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.mode != ViewEventEditor {
		t.Error("free cell should open the editor")
	}
}
