package grid

// RowWindow is the windowed (virtualized) vertical list of resource
// rows. Only rows inside the window are rendered; scrolling is by
// absolute offset in cells, and the current offset is always readable.
// This is the whole contract the interaction core drives.
type RowWindow struct {
	count          int // resource rows
	rowHeight      int // cells per row
	viewportHeight int // cells available for rows
	offset         int // absolute scroll offset in cells
}

// NewRowWindow creates a window over count rows of rowHeight cells.
func NewRowWindow(count, rowHeight, viewportHeight int) *RowWindow {
	w := &RowWindow{rowHeight: rowHeight}
	w.SetViewportHeight(viewportHeight)
	w.SetCount(count)
	return w
}

// Count returns the number of rows behind the window.
func (w *RowWindow) Count() int {
	return w.count
}

// SetCount updates the row count, re-clamping the offset.
func (w *RowWindow) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	w.count = count
	w.ScrollTo(w.offset)
}

// SetViewportHeight updates the visible height, re-clamping the offset.
func (w *RowWindow) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	w.viewportHeight = h
	w.ScrollTo(w.offset)
}

// RowHeight returns the per-row height in cells.
func (w *RowWindow) RowHeight() int {
	return w.rowHeight
}

// Offset returns the current absolute scroll offset in cells.
func (w *RowWindow) Offset() int {
	return w.offset
}

// MaxOffset is the largest useful scroll position: content height
// minus the viewport, never negative.
func (w *RowWindow) MaxOffset() int {
	max := w.count*w.rowHeight - w.viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// ScrollTo scrolls to an absolute offset, clamped to [0, MaxOffset].
func (w *RowWindow) ScrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if max := w.MaxOffset(); offset > max {
		offset = max
	}
	w.offset = offset
}

// VisibleRange returns the half-open row index range [first, last)
// the renderer should mount for the current offset.
func (w *RowWindow) VisibleRange() (first, last int) {
	if w.count == 0 || w.rowHeight == 0 || w.viewportHeight == 0 {
		return 0, 0
	}
	first = w.offset / w.rowHeight
	last = (w.offset + w.viewportHeight + w.rowHeight - 1) / w.rowHeight
	if last > w.count {
		last = w.count
	}
	return first, last
}
