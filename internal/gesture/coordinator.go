package gesture

import (
	"time"

	"github.com/cwarden/verdandi/internal/grid"
	"github.com/cwarden/verdandi/internal/schedule"
)

// Options are the coordinator's feature flags and tuning knobs.
// Editable gates all mutation gestures; Creatable and Droppable gate
// the create and move gestures individually. Per-event flags override
// on top.
type Options struct {
	Editable     bool
	Creatable    bool
	Droppable    bool
	Metrics      grid.Metrics
	Scroll       ScrollConfig
	DropCooldown time.Duration
}

// DefaultOptions enables everything with the standard layout.
func DefaultOptions() Options {
	return Options{
		Editable:  true,
		Creatable: true,
		Droppable: true,
		Metrics: grid.Metrics{
			ColumnWidth:  8,
			RowHeight:    2,
			HeaderHeight: 1,
			GutterWidth:  16,
		},
		Scroll:       DefaultScrollConfig(),
		DropCooldown: 300 * time.Millisecond,
	}
}

// Callbacks are the external collaborators the coordinator emits to.
// OnEventCreate hands a committed interval to the detail-collection
// collaborator; OnEventDrop relocates an event. A callback error is
// surfaced as a transient message and never leaves gesture state
// behind.
type Callbacks struct {
	OnEventCreate func(resourceID string, start, end time.Time) error
	OnEventDrop   func(ev schedule.Event, resourceID string, start, end time.Time) error
}

// Coordinator owns the gesture machines, the auto-scroll controller,
// and the interaction session as one unit. It rebuilds the event index
// atomically on input change, routes the normalized pointer stream to
// whichever machine it belongs to, and enforces that only one gesture
// is active at a time. All methods must be called from the same
// goroutine.
type Coordinator struct {
	opts Options
	cb   Callbacks

	gran schedule.Granularity
	cols []time.Time
	idx  *schedule.Index
	rows map[string]int // resource id -> row index

	spatial *grid.Spatial
	window  *grid.RowWindow
	create  *CreateMachine
	move    *MoveMachine
	scroll  *AutoScroll
	bus     *Bus
	session *Session

	viewport Viewport
	xOffset  int // horizontal scroll of the column area, mirrored onto the header

	lastX, lastY int
	lastDrop     time.Time
	now          func() time.Time
	closed       bool
}

// NewCoordinator builds an empty coordinator; call SetColumns and
// SetData before feeding input.
func NewCoordinator(opts Options, cb Callbacks) *Coordinator {
	c := &Coordinator{
		opts:    opts,
		cb:      cb,
		rows:    map[string]int{},
		idx:     schedule.NewIndex(nil, nil, schedule.Day),
		spatial: grid.NewSpatial(opts.Metrics),
		window:  grid.NewRowWindow(0, opts.Metrics.RowHeight, 0),
		bus:     NewBus(),
		session: &Session{},
		now:     time.Now,
	}
	c.create = NewCreateMachine(func(s CreateState) { c.bus.Publish(TopicCreateState, s) })
	c.move = NewMoveMachine(func(s MoveState) { c.bus.Publish(TopicMoveState, s) })
	c.scroll = NewAutoScroll(opts.Scroll, c.window,
		func(delta int) { c.ScrollColumns(delta) },
		func(row int) { c.bus.Publish(TopicHoveredResource, row) })
	return c
}

// SetColumns replaces the visible column sequence and granularity,
// regenerating everything derived from it.
func (c *Coordinator) SetColumns(cols []time.Time, g schedule.Granularity) {
	c.cols = cols
	c.gran = g
	c.spatial.SetExtent(len(cols), c.window.Count())
	c.clampXOffset()
	c.syncSpatial()
}

// SetData replaces the resource and event collections. The index, the
// row lookup, and the derived occupied sets are rebuilt together,
// atomically: no partial state is ever observable.
func (c *Coordinator) SetData(resources []schedule.Resource, events []schedule.Event) {
	idx := schedule.NewIndex(resources, events, c.gran)
	rows := make(map[string]int, len(resources))
	for i, r := range resources {
		rows[r.ID] = i
	}
	c.idx = idx
	c.rows = rows
	c.window.SetCount(len(resources))
	c.spatial.SetExtent(len(c.cols), len(resources))
	c.syncSpatial()
}

// SetViewport updates the visible area after a resize.
func (c *Coordinator) SetViewport(width, height int) {
	c.viewport = Viewport{Width: width, Height: height}
	rowArea := height - c.opts.Metrics.HeaderHeight
	if rowArea < 0 {
		rowArea = 0
	}
	c.window.SetViewportHeight(rowArea)
	c.clampXOffset()
	c.syncSpatial()
}

// Index returns the current event index.
func (c *Coordinator) Index() *schedule.Index {
	return c.idx
}

// Columns returns the visible column sequence.
func (c *Coordinator) Columns() []time.Time {
	return c.cols
}

// Window returns the windowed row list the renderer mounts from.
func (c *Coordinator) Window() *grid.RowWindow {
	return c.window
}

// XOffset is the horizontal scroll of the column area in cells. The
// renderer applies the same offset to the header and the body so they
// stay aligned.
func (c *Coordinator) XOffset() int {
	return c.xOffset
}

// CreateState returns the create gesture's current snapshot.
func (c *Coordinator) CreateState() CreateState {
	return c.create.State()
}

// MoveState returns the move gesture's current snapshot.
func (c *Coordinator) MoveState() MoveState {
	return c.move.State()
}

// Styles returns the shared session styles, creating them lazily.
func (c *Coordinator) Styles() SessionStyles {
	return c.session.Acquire()
}

// ScrollColumns scrolls the column area by delta cells, clamped to the
// content width.
func (c *Coordinator) ScrollColumns(delta int) {
	c.xOffset += delta
	c.clampXOffset()
	c.syncSpatial()
}

func (c *Coordinator) clampXOffset() {
	bodyWidth := c.viewport.Width - c.opts.Metrics.GutterWidth
	max := len(c.cols)*c.opts.Metrics.ColumnWidth - bodyWidth
	if max < 0 {
		max = 0
	}
	if c.xOffset > max {
		c.xOffset = max
	}
	if c.xOffset < 0 {
		c.xOffset = 0
	}
}

func (c *Coordinator) syncSpatial() {
	c.spatial.SetScroll(c.xOffset, c.window.Offset())
}

// Hit resolves a viewport point against the grid.
func (c *Coordinator) Hit(x, y int) grid.Hit {
	c.syncSpatial()
	return c.spatial.Hit(x, y)
}

// Subscribe helpers. Each returns a token for Unsubscribe.

func (c *Coordinator) OnCreateState(fn func(CreateState)) Token {
	return c.bus.Subscribe(TopicCreateState, func(p any) { fn(p.(CreateState)) })
}

func (c *Coordinator) OnMoveState(fn func(MoveState)) Token {
	return c.bus.Subscribe(TopicMoveState, func(p any) { fn(p.(MoveState)) })
}

func (c *Coordinator) OnHoveredResource(fn func(int)) Token {
	return c.bus.Subscribe(TopicHoveredResource, func(p any) { fn(p.(int)) })
}

func (c *Coordinator) OnErrorMessage(fn func(string)) Token {
	return c.bus.Subscribe(TopicError, func(p any) { fn(p.(string)) })
}

// Unsubscribe removes a subscription.
func (c *Coordinator) Unsubscribe(tok Token) {
	c.bus.Unsubscribe(tok)
}

// Handle routes one normalized input through the active gesture.
// Precondition violations (disabled flags, non-draggable events,
// presses on occupied cells) are silently ignored; that is affordance
// gating, not an error.
func (c *Coordinator) Handle(in Input) {
	c.lastX, c.lastY = in.X, in.Y

	switch in.Kind {
	case InputPress:
		c.handlePress(in)
	case InputMove, InputDragOver:
		c.handleMove(in)
	case InputRelease:
		c.handleRelease(in)
	case InputDragStart:
		c.handleDragStart(in)
	case InputDragLeave:
		c.move.SetDropAllowed(false)
	case InputDrop:
		c.handleDrop(in)
	case InputDragEnd:
		c.cleanupMove()
	}
}

func (c *Coordinator) handlePress(in Input) {
	if !c.opts.Editable || !c.opts.Creatable {
		return
	}
	hit := c.Hit(in.X, in.Y)
	if hit.Region != grid.RegionCell {
		return
	}
	res, ok := c.idx.Resource(hit.ResourceIndex)
	if !ok {
		return
	}
	bucket := c.cols[hit.ColumnIndex]

	// A press on a glyph belongs to the move gesture; the front end
	// sends DragStart for those, but guard anyway.
	if c.idx.Occupied(res.ID, bucket) {
		return
	}

	// Only one gesture of either kind may be active.
	c.cancelActive()
	c.create.Press(res.ID, hit.ResourceIndex, hit.ColumnIndex)
}

func (c *Coordinator) handleMove(in Input) {
	if c.create.Active() {
		hit := c.Hit(in.X, in.Y)
		if hit.Region == grid.RegionCell {
			// The row is pinned to the anchor's resource; only the
			// column follows the pointer. A failed hit-test (pointer
			// off the grid, cell not yet scrolled in) is a no-op tick.
			c.create.MoveTo(hit.ColumnIndex)
		}
		return
	}

	if c.move.Active() {
		c.move.MoveTo(in.X, in.Y)
		hit := c.Hit(in.X, in.Y)
		if hit.Region != grid.RegionCell {
			return // prior indicator state retained
		}
		res, ok := c.idx.Resource(hit.ResourceIndex)
		if !ok {
			return
		}
		ev := c.move.State().Event
		start := c.cols[hit.ColumnIndex]
		end := start.Add(ev.Duration())
		allowed := c.opts.Droppable && !c.idx.HasConflict(res.ID, start, end, ev.ID)
		c.move.SetDropAllowed(allowed)
	}
}

func (c *Coordinator) handleRelease(in Input) {
	if !c.create.Active() {
		return
	}

	hit := c.Hit(in.X, in.Y)
	if hit.Region != grid.RegionCell {
		// Release outside any valid cell cancels with no commit.
		c.create.Cancel()
		return
	}

	final, ok := c.create.Commit()
	if !ok {
		return
	}

	lo, hi := final.Columns()
	start := c.cols[lo]
	end := schedule.NextBucket(c.cols[hi], c.gran)

	// Only the initial press checked occupancy; buckets crossed
	// mid-drag are validated here, at commit.
	if c.idx.HasConflict(final.ResourceID, start, end, "") {
		c.error("cannot create: time range is already taken")
		return
	}

	if c.cb.OnEventCreate != nil {
		if err := c.cb.OnEventCreate(final.ResourceID, start, end); err != nil {
			c.error("create failed: " + err.Error())
		}
	}
}

func (c *Coordinator) handleDragStart(in Input) {
	if !c.opts.Editable {
		return
	}
	hit := c.Hit(in.X, in.Y)
	if hit.Region != grid.RegionCell {
		return
	}
	res, ok := c.idx.Resource(hit.ResourceIndex)
	if !ok {
		return
	}
	ev, ok := c.idx.EventAt(res.ID, c.cols[hit.ColumnIndex])
	if !ok || !ev.CanDrag(c.opts.Editable) {
		return
	}

	c.cancelActive()

	gx, gy, gw, visible := c.GlyphBounds(ev)
	grabX, grabY := 0, 0
	if visible {
		grabX = in.X - gx
		grabY = in.Y - gy
	}
	c.session.Acquire()
	c.move.Start(ev, grabX, grabY, gw, in.X, in.Y)
	c.scroll.Start()
}

func (c *Coordinator) handleDrop(in Input) {
	if !c.move.Active() {
		return
	}

	// Re-entrancy guard: a duplicate drop or click arriving during the
	// relocation notification must not double-fire.
	now := c.now()
	if !c.lastDrop.IsZero() && now.Sub(c.lastDrop) < c.opts.DropCooldown {
		return
	}
	c.lastDrop = now

	snapshot := c.move.State()
	hit := c.Hit(in.X, in.Y)
	if hit.Region != grid.RegionCell || !c.opts.Droppable {
		c.cleanupMove()
		return
	}
	res, ok := c.idx.Resource(hit.ResourceIndex)
	if !ok {
		c.cleanupMove()
		return
	}

	ev := snapshot.Event
	start := c.cols[hit.ColumnIndex]
	// Duration is a strict invariant across moves.
	end := start.Add(ev.Duration())

	if c.idx.HasConflict(res.ID, start, end, ev.ID) {
		c.error("cannot move here: time range is already taken")
		c.cleanupMove()
		return
	}

	// Emit the relocation first; gesture, auto-scroll, and ghost state
	// are cleared only afterwards, and cleared even when the callback
	// fails.
	if c.cb.OnEventDrop != nil {
		if err := c.cb.OnEventDrop(ev, res.ID, start, end); err != nil {
			c.error("move failed: " + err.Error())
		}
	}
	c.cleanupMove()
}

// cleanupMove tears down the move gesture, the auto-scroll loop, and
// the ghost. Every path out of a drag funnels through here, and
// running it twice is the same as running it once.
func (c *Coordinator) cleanupMove() {
	c.move.Finish()
	c.scroll.Stop()
}

// cancelActive cancels whatever gesture is running; starting a new
// gesture calls this first.
func (c *Coordinator) cancelActive() {
	c.create.Cancel()
	c.cleanupMove()
}

// Cancel aborts any active gesture via its terminal transition.
func (c *Coordinator) Cancel() {
	c.cancelActive()
}

// NeedsTick reports whether the frame loop must be running. The loop
// is started when a move gesture begins and must never be left running
// after the gesture ends.
func (c *Coordinator) NeedsTick() bool {
	return c.move.Active()
}

// Tick advances the auto-scroll controller one frame at the last known
// pointer position. Returns true if any scrolling happened.
func (c *Coordinator) Tick() bool {
	if !c.move.Active() {
		c.scroll.Stop()
		return false
	}
	moved := c.scroll.Tick(c.lastX, c.lastY, c.viewport)
	if moved {
		c.syncSpatial()
	}
	return moved
}

// GlyphBounds returns the viewport rectangle of an event's glyph:
// x, y, width in cells, and whether any of it is visible.
func (c *Coordinator) GlyphBounds(ev schedule.Event) (x, y, width int, visible bool) {
	p := grid.Position(ev, c.cols, c.gran)
	if !p.Visible {
		return 0, 0, 0, false
	}
	row, ok := c.rows[ev.ResourceID]
	if !ok {
		return 0, 0, 0, false
	}
	m := c.opts.Metrics
	x = m.GutterWidth + p.StartIndex*m.ColumnWidth - c.xOffset
	y = m.HeaderHeight + row*m.RowHeight - c.window.Offset()
	width = p.Span * m.ColumnWidth
	return x, y, width, true
}

func (c *Coordinator) error(text string) {
	c.bus.Publish(TopicError, text)
}

// Close cancels any active gesture and releases the session
// resources. Idempotent.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancelActive()
	c.session.Release()
}
