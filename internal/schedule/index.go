package schedule

import (
	"time"
)

// Index provides O(1) lookup of events by id and by owning resource,
// plus a derived per-resource occupied-bucket set. It is immutable
// once built; the owner swaps the whole index when the event or
// resource collection changes. The rebuild is linear and bounded by a
// tens-of-thousands event count, so no incremental updates.
type Index struct {
	gran       Granularity
	resources  []Resource
	byID       map[string]Event
	byResource map[string][]Event
	occupied   map[string]map[int64]struct{}
}

// NewIndex builds all three lookup structures in one pass. Duplicate
// event ids follow last-write-wins; the loader rejects duplicates in
// user-authored files before they can reach here.
func NewIndex(resources []Resource, events []Event, g Granularity) *Index {
	ix := &Index{
		gran:       g,
		resources:  resources,
		byID:       make(map[string]Event, len(events)),
		byResource: make(map[string][]Event),
		occupied:   make(map[string]map[int64]struct{}),
	}

	for _, ev := range events {
		ix.byID[ev.ID] = ev
		ix.byResource[ev.ResourceID] = append(ix.byResource[ev.ResourceID], ev)

		occ := ix.occupied[ev.ResourceID]
		if occ == nil {
			occ = make(map[int64]struct{})
			ix.occupied[ev.ResourceID] = occ
		}
		for b := TruncateBucket(ev.Start, g); b.Before(ev.End); b = NextBucket(b, g) {
			occ[BucketKey(b)] = struct{}{}
		}
	}

	return ix
}

// Granularity returns the bucket granularity the index was built with.
func (ix *Index) Granularity() Granularity {
	return ix.gran
}

// Resources returns the resource collection in input order.
func (ix *Index) Resources() []Resource {
	return ix.resources
}

// Resource returns the resource at the given row index.
func (ix *Index) Resource(i int) (Resource, bool) {
	if i < 0 || i >= len(ix.resources) {
		return Resource{}, false
	}
	return ix.resources[i], true
}

// Event looks up an event by id.
func (ix *Index) Event(id string) (Event, bool) {
	ev, ok := ix.byID[id]
	return ev, ok
}

// ResourceEvents returns the events owned by a resource, in input
// order. The returned slice is shared; callers must not mutate it.
func (ix *Index) ResourceEvents(resourceID string) []Event {
	return ix.byResource[resourceID]
}

// Occupied is the coarse cell-level "is this taken" hint used by the
// create gesture's initial press. Real conflict decisions go through
// HasConflict, which checks the authoritative intervals.
func (ix *Index) Occupied(resourceID string, bucket time.Time) bool {
	occ := ix.occupied[resourceID]
	if occ == nil {
		return false
	}
	_, ok := occ[BucketKey(bucket)]
	return ok
}

// EventAt returns the event covering the given bucket on a resource,
// if any. Used to resolve which glyph a pointer press lands on.
func (ix *Index) EventAt(resourceID string, bucket time.Time) (Event, bool) {
	next := NextBucket(bucket, ix.gran)
	for _, ev := range ix.byResource[resourceID] {
		if ev.Start.Before(next) && ev.End.After(bucket) {
			return ev, true
		}
	}
	return Event{}, false
}
