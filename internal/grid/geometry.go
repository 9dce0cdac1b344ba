// Package grid maps schedule intervals and pointer coordinates onto
// the scheduling grid's cell geometry. It holds no interaction state;
// the gesture package drives it.
package grid

import (
	"time"

	"github.com/cwarden/verdandi/internal/schedule"
)

// Placement is the horizontal geometry of one event against the
// visible column sequence. Left and Width are derived from the layout
// metrics: Left = StartIndex * ColumnWidth, Width = Span * ColumnWidth.
type Placement struct {
	Visible      bool
	StartsBefore bool // interval begins before the first visible column
	EndsAfter    bool // interval ends past the last visible column
	StartIndex   int
	Span         int // columns covered, >= 1 when visible
}

// Position locates an event's half-open interval within the visible
// ordered column sequence. Events entirely outside the window yield
// Visible=false and no geometry; events spanning the whole window are
// clamped to [0, last].
func Position(ev schedule.Event, cols []time.Time, g schedule.Granularity) Placement {
	if len(cols) == 0 {
		return Placement{}
	}

	startBucket := schedule.TruncateBucket(ev.Start, g)
	lastBucket := schedule.LastBucketOf(ev.End, g)
	if lastBucket.Before(startBucket) {
		// Degenerate interval shorter than one bucket still occupies
		// its start bucket.
		lastBucket = startBucket
	}

	startIdx := columnIndex(cols, startBucket)
	endIdx := columnIndex(cols, lastBucket)

	first, last := cols[0], cols[len(cols)-1]

	if startIdx < 0 && endIdx < 0 {
		// Neither endpoint lands on a visible column. The interval is
		// still visible when it spans the window entirely.
		if startBucket.Before(first) && lastBucket.After(last) {
			return Placement{
				Visible:      true,
				StartsBefore: true,
				EndsAfter:    true,
				StartIndex:   0,
				Span:         len(cols),
			}
		}
		return Placement{}
	}

	p := Placement{Visible: true}
	if startIdx < 0 {
		p.StartsBefore = true
		startIdx = 0
	}
	if endIdx < 0 {
		p.EndsAfter = true
		endIdx = len(cols) - 1
	}

	p.StartIndex = startIdx
	p.Span = endIdx - startIdx + 1
	return p
}

// columnIndex finds the column holding the given bucket, -1 if the
// bucket is outside the visible sequence.
func columnIndex(cols []time.Time, bucket time.Time) int {
	key := schedule.BucketKey(bucket)
	for i, c := range cols {
		if schedule.BucketKey(c) == key {
			return i
		}
	}
	return -1
}
