package schedule

import (
	"time"
)

// Granularity is the width of one grid column.
type Granularity int

const (
	Day Granularity = iota
	Month
	Quarter
)

func (g Granularity) String() string {
	switch g {
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	default:
		return "day"
	}
}

// ParseGranularity maps a config/CLI value to a Granularity.
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "day", "":
		return Day, true
	case "month":
		return Month, true
	case "quarter":
		return Quarter, true
	}
	return Day, false
}

// Resource is one row of the grid. The core never mutates resources;
// callers replace the whole collection to change it.
type Resource struct {
	ID     string
	Title  string
	Fields map[string]string
}

// Event occupies the half-open interval [Start, End) on one resource.
// End must be after Start. Events on the same resource must not
// overlap; the index enforces this only for new mutations and trusts
// the initial collection.
type Event struct {
	ID         string
	ResourceID string
	Start      time.Time
	End        time.Time
	Title      string
	Color      string

	// Per-event overrides of the global flags. nil means "inherit".
	Editable  *bool
	Draggable *bool
	Resizable *bool
}

// Duration returns the event's length. Moves preserve it exactly.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// CanDrag reports whether the event may be picked up, given the
// global editable flag.
func (e Event) CanDrag(editable bool) bool {
	if !editable {
		return false
	}
	if e.Editable != nil && !*e.Editable {
		return false
	}
	if e.Draggable != nil && !*e.Draggable {
		return false
	}
	return true
}
