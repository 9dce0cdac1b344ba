package gesture

// ScrollConfig tunes the edge-triggered auto-scroll controller.
type ScrollConfig struct {
	EdgeThreshold int     // distance from a viewport edge where scrolling engages
	MaxHorizontal float64 // horizontal speed at the edge, cells per tick
	MaxVertical   float64 // vertical speed at the edge, cells per tick
}

// DefaultScrollConfig matches a ~60 Hz tick: roughly one row and one
// column per couple of ticks at full speed.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		EdgeThreshold: 4,
		MaxHorizontal: 2,
		MaxVertical:   1,
	}
}

// Viewport is the visible area speeds are computed against. It is the
// viewport, not the row list's content bounds, since the content may
// exceed it.
type Viewport struct {
	Width  int
	Height int
}

// RowScroller is the narrow windowed-list contract the controller
// drives: row count, current absolute offset, and imperative
// scroll-to-offset. Rows outside the window need not be mounted.
type RowScroller interface {
	Count() int
	RowHeight() int
	Offset() int
	ScrollTo(offset int)
}

// AutoScroll drives continuous scrolling while a move gesture holds
// the pointer near a viewport edge. Vertical scrolling goes through
// the RowScroller by absolute offset; the controller keeps a shadow
// offset because the list only accepts whole offsets, not a fractional
// per-tick stream. Horizontal scrolling is emitted as deltas for the
// column container, which the owner mirrors onto the header.
type AutoScroll struct {
	cfg     ScrollConfig
	rows    RowScroller
	scrollX func(delta int)
	onHover func(resourceIndex int)

	active  bool
	shadow  float64 // fractional vertical offset commanded to the list
	hAccum  float64 // fractional horizontal remainder between ticks
	hovered int
}

// NewAutoScroll wires the controller to its scroll targets. onHover
// fires when the resource row under the shadow offset changes; this is
// how row highlighting tracks the pointer despite most rows being
// unmounted.
func NewAutoScroll(cfg ScrollConfig, rows RowScroller, scrollX func(delta int), onHover func(int)) *AutoScroll {
	return &AutoScroll{cfg: cfg, rows: rows, scrollX: scrollX, onHover: onHover, hovered: -1}
}

// Active reports whether a gesture currently owns the controller.
func (a *AutoScroll) Active() bool {
	return a.active
}

// HoveredResource returns the resource row index last derived from the
// shadow offset, -1 before any vertical scrolling.
func (a *AutoScroll) HoveredResource() int {
	return a.hovered
}

// Start arms the controller at the list's current offset. Called when
// the move gesture enters Dragging.
func (a *AutoScroll) Start() {
	if a.active {
		return
	}
	a.active = true
	a.shadow = float64(a.rows.Offset())
	a.hAccum = 0
	a.hovered = -1
}

// Stop disarms the controller. Idempotent; called on every gesture
// exit so the tick loop is never left running.
func (a *AutoScroll) Stop() {
	a.active = false
	a.hAccum = 0
	a.hovered = -1
}

// Speeds computes the horizontal and vertical scroll speeds for a
// pointer position. Zero beyond the edge threshold, growing linearly
// to the capped maximum as the pointer approaches the edge.
func (a *AutoScroll) Speeds(px, py int, vp Viewport) (h, v float64) {
	h = edgeSpeed(px, vp.Width, a.cfg.EdgeThreshold, a.cfg.MaxHorizontal)
	v = edgeSpeed(py, vp.Height, a.cfg.EdgeThreshold, a.cfg.MaxVertical)
	return h, v
}

// edgeSpeed maps a position along one axis to a signed speed: negative
// near the low edge, positive near the high edge.
func edgeSpeed(pos, extent, threshold int, max float64) float64 {
	if threshold <= 0 || extent <= 0 {
		return 0
	}
	low := pos
	high := extent - pos
	if low < threshold && low <= high {
		if low < 0 {
			low = 0
		}
		return -max * float64(threshold-low) / float64(threshold)
	}
	if high < threshold {
		if high < 0 {
			high = 0
		}
		return max * float64(threshold-high) / float64(threshold)
	}
	return 0
}

// Tick advances one frame: computes speeds for the pointer, applies
// vertical motion through the shadow offset, applies horizontal deltas,
// and re-derives the hovered resource. Returns true while either speed
// is non-zero, so the owner knows to keep the frame loop running.
func (a *AutoScroll) Tick(px, py int, vp Viewport) bool {
	if !a.active {
		return false
	}

	h, v := a.Speeds(px, py, vp)

	if v != 0 {
		a.shadow += v
		maxShadow := float64(a.rows.Count() * a.rows.RowHeight())
		if a.shadow < 0 {
			a.shadow = 0
		}
		if a.shadow > maxShadow {
			a.shadow = maxShadow
		}
		a.rows.ScrollTo(int(a.shadow))

		hovered := int(a.shadow) / a.rows.RowHeight()
		if hovered > a.rows.Count()-1 {
			hovered = a.rows.Count() - 1
		}
		if hovered < 0 {
			hovered = 0
		}
		if hovered != a.hovered {
			a.hovered = hovered
			if a.onHover != nil {
				a.onHover(hovered)
			}
		}
	}

	if h != 0 {
		a.hAccum += h
		delta := int(a.hAccum)
		if delta != 0 {
			a.hAccum -= float64(delta)
			if a.scrollX != nil {
				a.scrollX(delta)
			}
		}
	}

	return h != 0 || v != 0
}
