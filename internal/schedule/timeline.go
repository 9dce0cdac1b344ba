package schedule

import (
	"fmt"
	"time"
)

// TruncateBucket returns the start of the bucket containing t.
func TruncateBucket(t time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Quarter:
		qm := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), qm, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// NextBucket returns the start of the bucket after b. b must already
// be a bucket start.
func NextBucket(b time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return b.AddDate(0, 1, 0)
	case Quarter:
		return b.AddDate(0, 3, 0)
	default:
		return b.AddDate(0, 0, 1)
	}
}

// PrevBucket returns the start of the bucket before b.
func PrevBucket(b time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return b.AddDate(0, -1, 0)
	case Quarter:
		return b.AddDate(0, -3, 0)
	default:
		return b.AddDate(0, 0, -1)
	}
}

// LastBucketOf returns the start of the bucket immediately before the
// exclusive end of a half-open interval. An interval ending exactly on
// a bucket boundary does not occupy that boundary's bucket.
func LastBucketOf(end time.Time, g Granularity) time.Time {
	b := TruncateBucket(end, g)
	if b.Equal(end) {
		return PrevBucket(b, g)
	}
	return b
}

// BucketKey is the map key for one bucket. Bucket starts are unique
// per granularity, so the unix timestamp is sufficient.
func BucketKey(b time.Time) int64 {
	return b.Unix()
}

// Columns generates the ordered, deduplicated bucket sequence covering
// [from, to]. It is regenerated whole whenever the range or the
// granularity changes; column index is the unit of horizontal geometry.
func Columns(from, to time.Time, g Granularity) []time.Time {
	if to.Before(from) {
		from, to = to, from
	}
	var cols []time.Time
	for b := TruncateBucket(from, g); !b.After(to); b = NextBucket(b, g) {
		cols = append(cols, b)
	}
	return cols
}

// BucketLabel renders a column header label.
func BucketLabel(b time.Time, g Granularity) string {
	switch g {
	case Month:
		return b.Format("Jan 06")
	case Quarter:
		return fmt.Sprintf("Q%d %d", (int(b.Month())-1)/3+1, b.Year())
	default:
		return b.Format("Jan 02")
	}
}
