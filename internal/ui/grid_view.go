package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/cwarden/verdandi/internal/gesture"
	"github.com/cwarden/verdandi/internal/schedule"
)

// renderGridView renders the whole screen as a lipgloss Canvas: the
// column header, the visible window of resource rows, event glyphs,
// the create preview, the drag ghost on top, and the status bar.
func (m *Model) renderGridView() string {
	var layers []*lipgloss.Layer

	bodyHeight := m.height - 2 // status bar
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	layers = append(layers, m.createHeaderLayer())
	layers = append(layers, m.createRowLayers(bodyHeight)...)
	layers = append(layers, m.createEventLayers(bodyHeight)...)
	if preview := m.createPreviewLayer(bodyHeight); preview != nil {
		layers = append(layers, preview)
	}
	if ghost := m.createGhostLayer(); ghost != nil {
		layers = append(layers, ghost)
	}
	layers = append(layers, m.createStatusBarLayers(bodyHeight)...)

	canvas := lipgloss.NewCanvas(layers...)
	return canvas.Render()
}

// createHeaderLayer builds the column label row, horizontally aligned
// with the body by applying the same scroll offset.
func (m *Model) createHeaderLayer() *lipgloss.Layer {
	cols := m.coord.Columns()
	colW := m.config.ColumnWidth

	var sb strings.Builder
	for _, c := range cols {
		label := schedule.BucketLabel(c, m.gran)
		sb.WriteString(padCell(label, colW))
	}

	// Mirror the body's horizontal offset so header and body columns
	// stay aligned while auto-scroll moves them.
	full := sb.String()
	visible := sliceCells(full, m.coord.XOffset(), m.width-m.config.GutterWidth)

	header := strings.Repeat(" ", m.config.GutterWidth) + visible
	return lipgloss.NewLayer(m.styles.Header.Render(header)).X(0).Y(0).Z(0)
}

// createRowLayers builds the gutter titles and lane backgrounds for
// the mounted window of resource rows only.
func (m *Model) createRowLayers(bodyHeight int) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	w := m.coord.Window()
	first, last := w.VisibleRange()
	rowH := w.RowHeight()
	dragging := m.coord.MoveState().Phase == gesture.MoveDragging

	for row := first; row < last; row++ {
		res, ok := m.coord.Index().Resource(row)
		if !ok {
			continue
		}

		y := 1 + row*rowH - w.Offset()
		if y >= bodyHeight {
			break
		}
		if y < 1 {
			continue
		}

		style := m.styles.Gutter
		if dragging && row == m.hoveredRow {
			style = m.styles.Selected
		} else if row == m.selectedRow {
			style = m.styles.Normal
		}

		title := truncate.StringWithTail(res.Title, uint(m.config.GutterWidth-1), "…")
		gutter := padCell(title, m.config.GutterWidth)
		layers = append(layers, lipgloss.NewLayer(style.Render(gutter)).X(0).Y(y).Z(1))

		// Lane separator on the row's last cell line
		if rowH > 1 && y+rowH-1 < bodyHeight {
			sep := strings.Repeat("┄", m.width)
			layers = append(layers, lipgloss.NewLayer(m.styles.Help.Render(sep)).X(0).Y(y+rowH-1).Z(0))
		}
	}

	return layers
}

// createEventLayers places a glyph for every visible event of every
// mounted row, clipped to the body area.
func (m *Model) createEventLayers(bodyHeight int) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	w := m.coord.Window()
	first, last := w.VisibleRange()
	moveState := m.coord.MoveState()

	z := 10
	for row := first; row < last; row++ {
		res, ok := m.coord.Index().Resource(row)
		if !ok {
			continue
		}
		for _, ev := range m.coord.Index().ResourceEvents(res.ID) {
			// The original stays in place while dragged; the ghost is
			// a separate detached layer.
			x, y, width, visible := m.coord.GlyphBounds(ev)
			if !visible || y < 1 || y >= bodyHeight {
				continue
			}

			x, width = clipSpan(x, width, m.config.GutterWidth, m.width)
			if width <= 0 {
				continue
			}

			style := m.glyphStyle(ev)
			if moveState.Phase == gesture.MoveDragging && moveState.Event.ID == ev.ID {
				style = m.styles.Help
			}

			label := truncate.StringWithTail(ev.Title, uint(width), "…")
			block := style.Width(width).Render(label)
			layers = append(layers, lipgloss.NewLayer(block).X(x).Y(y).Z(z))
			z++
		}
	}

	return layers
}

// createPreviewLayer draws the live rectangle of an in-flight create
// gesture across its normalized column range.
func (m *Model) createPreviewLayer(bodyHeight int) *lipgloss.Layer {
	state := m.coord.CreateState()
	if state.Phase == gesture.CreateIdle {
		return nil
	}

	lo, hi := state.Columns()
	colW := m.config.ColumnWidth
	w := m.coord.Window()

	x := m.config.GutterWidth + lo*colW - m.coord.XOffset()
	y := 1 + state.ResourceIndex*w.RowHeight() - w.Offset()
	width := (hi - lo + 1) * colW
	if y < 1 || y >= bodyHeight {
		return nil
	}
	x, width = clipSpan(x, width, m.config.GutterWidth, m.width)
	if width <= 0 {
		return nil
	}

	styles := m.coord.Styles()
	block := styles.Preview.Width(width).Render("+")
	return lipgloss.NewLayer(block).X(x).Y(y).Z(500)
}

// createGhostLayer draws the detached glyph that follows the pointer
// during a move, offset by the grab point so it never jumps.
func (m *Model) createGhostLayer() *lipgloss.Layer {
	state := m.coord.MoveState()
	if state.Phase != gesture.MoveDragging {
		return nil
	}

	x := state.PointerX - state.GrabX
	y := state.PointerY - state.GrabY
	if y < 0 {
		y = 0
	}
	if x < 0 {
		x = 0
	}

	styles := m.coord.Styles()
	style := styles.Ghost
	label := state.Event.Title
	if !state.DropAllowed {
		style = styles.Blocked
		label = "✗ " + label
	}

	width := state.OriginalWidth
	if width < 1 {
		width = 1
	}
	label = truncate.StringWithTail(label, uint(width), "…")
	block := style.Width(width).Render(label)
	return lipgloss.NewLayer(block).X(x).Y(y).Z(1000)
}

// createStatusBarLayers renders the two status lines at the bottom.
func (m *Model) createStatusBarLayers(bodyHeight int) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	now := time.Now()
	info := fmt.Sprintf(" %s  ·  %d resources  ·  %s view",
		now.Format("Monday, January 2 at 15:04"),
		len(m.resources),
		m.gran)
	layers = append(layers, lipgloss.NewLayer(m.styles.Help.Render(info)).
		X(0).Y(bodyHeight).Z(2000))

	if m.message != "" {
		layers = append(layers, lipgloss.NewLayer(m.styles.Message.Render(m.message)).
			X(0).Y(bodyHeight+1).Z(2000))
	} else {
		helpText := "drag:create/move  h/j/k/l:navigate  n:new  z:zoom  o:today  r:reload  ?:help  q:quit"
		aligned := m.styles.Help.Width(m.width).Align(lipgloss.Right).Render(helpText)
		layers = append(layers, lipgloss.NewLayer(aligned).
			X(0).Y(bodyHeight+1).Z(2000))
	}

	return layers
}

func (m *Model) glyphStyle(ev schedule.Event) lipgloss.Style {
	bg := glyphBackground(ev)
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.ANSIColor(255))
}

// glyphBackground picks a color by event length so long bookings stand
// out, with per-event color names taking precedence.
func glyphBackground(ev schedule.Event) lipgloss.ANSIColor {
	switch ev.Color {
	case "red":
		return lipgloss.ANSIColor(124)
	case "green":
		return lipgloss.ANSIColor(28)
	case "blue":
		return lipgloss.ANSIColor(24)
	case "yellow":
		return lipgloss.ANSIColor(136)
	}

	days := ev.Duration().Hours() / 24
	if days >= 28 {
		return lipgloss.ANSIColor(52)
	} else if days >= 7 {
		return lipgloss.ANSIColor(63)
	} else if days >= 2 {
		return lipgloss.ANSIColor(99)
	}
	return lipgloss.ANSIColor(105)
}

// clipSpan clips a horizontal span to [left, right), returning the
// adjusted x and width.
func clipSpan(x, width, left, right int) (int, int) {
	if x < left {
		width -= left - x
		x = left
	}
	if x+width > right {
		width = right - x
	}
	return x, width
}

// padCell pads or truncates a label to exactly width cells.
func padCell(s string, width int) string {
	s = truncate.String(s, uint(width))
	if n := width - len([]rune(s)); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}

// sliceCells returns the [from, from+width) cell slice of a plain
// (unstyled) string, padding with spaces past its end.
func sliceCells(s string, from, width int) string {
	if width < 0 {
		width = 0
	}
	runes := []rune(s)
	if from > len(runes) {
		from = len(runes)
	}
	end := from + width
	if end > len(runes) {
		end = len(runes)
	}
	out := string(runes[from:end])
	if n := width - len([]rune(out)); n > 0 {
		out += strings.Repeat(" ", n)
	}
	return out
}
