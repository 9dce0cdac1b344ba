package schedule

import (
	"errors"
	"time"
)

// Schedule errors.
var (
	ErrConflict        = errors.New("interval conflicts with an existing event")
	ErrDuplicateID     = errors.New("duplicate event id")
	ErrUnknownResource = errors.New("unknown resource id")
	ErrInvalidInterval = errors.New("event end must be after start")
)

// Overlaps reports whether the half-open intervals [a0,a1) and [b0,b1)
// intersect. This single predicate backs every conflict decision:
// create commit, move-hover preview, and drop. Adjacent intervals
// sharing a boundary do not overlap.
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && a1.After(b0)
}

// HasConflict reports whether the candidate interval [start, end)
// overlaps any event on the resource, excluding excludeID (the event
// being moved; empty to exclude nothing). Which conflicting event is
// found first is unspecified.
func (ix *Index) HasConflict(resourceID string, start, end time.Time, excludeID string) bool {
	for _, ev := range ix.byResource[resourceID] {
		if excludeID != "" && ev.ID == excludeID {
			continue
		}
		if Overlaps(start, end, ev.Start, ev.End) {
			return true
		}
	}
	return false
}
