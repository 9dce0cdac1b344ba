package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwarden/verdandi/internal/gesture"
	"github.com/cwarden/verdandi/internal/grid"
)

// handleMouse translates terminal mouse events into the normalized
// gesture stream. The terminal, like the DOM, has no drag-move
// primitive: motion while a drag is active is synthesized into
// drag-over events so the machines see one uniform stream.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ViewGrid {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.mousePressed = true
			if m.glyphAt(msg.X, msg.Y) {
				m.coord.Handle(gesture.Input{Kind: gesture.InputDragStart, X: msg.X, Y: msg.Y})
			} else {
				m.coord.Handle(gesture.Input{Kind: gesture.InputPress, X: msg.X, Y: msg.Y})
			}
			m.selectCell(msg.X, msg.Y)

		case tea.MouseButtonWheelUp:
			w := m.coord.Window()
			w.ScrollTo(w.Offset() - w.RowHeight())

		case tea.MouseButtonWheelDown:
			w := m.coord.Window()
			w.ScrollTo(w.Offset() + w.RowHeight())

		case tea.MouseButtonWheelLeft:
			m.coord.ScrollColumns(-m.config.ColumnWidth)

		case tea.MouseButtonWheelRight:
			m.coord.ScrollColumns(m.config.ColumnWidth)
		}

	case tea.MouseActionMotion:
		if !m.mousePressed {
			return m, nil
		}
		if m.coord.MoveState().Phase == gesture.MoveDragging {
			m.coord.Handle(gesture.Input{Kind: gesture.InputDragOver, X: msg.X, Y: msg.Y})
			// The frame loop drives auto-scroll while dragging; start
			// it on demand and let frameMsg stop it once the gesture
			// ends.
			if !m.frameRunning {
				m.frameRunning = true
				return m, m.frameCmd()
			}
		} else {
			m.coord.Handle(gesture.Input{Kind: gesture.InputMove, X: msg.X, Y: msg.Y})
		}

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		m.mousePressed = false
		if m.coord.MoveState().Phase == gesture.MoveDragging {
			m.coord.Handle(gesture.Input{Kind: gesture.InputDrop, X: msg.X, Y: msg.Y})
			m.coord.Handle(gesture.Input{Kind: gesture.InputDragEnd, X: msg.X, Y: msg.Y})
			m.hoveredRow = -1
		} else {
			m.coord.Handle(gesture.Input{Kind: gesture.InputRelease, X: msg.X, Y: msg.Y})
		}
	}

	return m, nil
}

// glyphAt reports whether an event glyph sits under the point, which
// decides between the create and move gestures on press.
func (m *Model) glyphAt(x, y int) bool {
	hit := m.coord.Hit(x, y)
	if hit.Region != grid.RegionCell {
		return false
	}
	res, ok := m.coord.Index().Resource(hit.ResourceIndex)
	if !ok {
		return false
	}
	cols := m.coord.Columns()
	if hit.ColumnIndex >= len(cols) {
		return false
	}
	_, found := m.coord.Index().EventAt(res.ID, cols[hit.ColumnIndex])
	return found
}

// selectCell moves the keyboard selection to the cell under the
// pointer so mouse and keyboard stay in agreement.
func (m *Model) selectCell(x, y int) {
	hit := m.coord.Hit(x, y)
	if hit.Region != grid.RegionCell {
		return
	}
	m.selectedRow = hit.ResourceIndex
	m.selectedCol = hit.ColumnIndex
}
