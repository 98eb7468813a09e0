package interval

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval is returned when an interval is constructed with
// start >= end.
var ErrInvalidInterval = errors.New("interval start must be before end")

// TimeInterval is a half-open range of absolute instants [Start, End).
// It is a plain value; callers copy it freely and never share mutable state.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// New creates a TimeInterval, validating start < end.
func New(start, end time.Time) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Duration returns the elapsed time covered by the interval.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval is the zero value.
func (iv TimeInterval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap: [10:00,11:00) and [11:00,12:00) are
// disjoint.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Adjacent reports whether one interval ends exactly where the other begins.
func (iv TimeInterval) Adjacent(other TimeInterval) bool {
	return iv.End.Equal(other.Start) || other.End.Equal(iv.Start)
}

// Merge coalesces a list of intervals into a sorted, non-overlapping,
// minimal set. Overlapping intervals and back-to-back adjacent intervals
// (one ending exactly where the next begins) collapse into a single block,
// so a busy timeline never fragments availability at touching boundaries.
//
// The input is not modified; the result is always freshly allocated.
func Merge(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]TimeInterval, 0, len(sorted))
	current := sorted[0]
	for _, iv := range sorted[1:] {
		// Overlapping or adjacent: extend the current block.
		if !iv.Start.After(current.End) {
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)

	return merged
}

// Subtract returns the free portions of window not covered by busy.
// The busy list must be sorted and non-overlapping (see Merge); results are
// clipped to the window bounds, ordered, and never zero-length.
func Subtract(window TimeInterval, busy []TimeInterval) []TimeInterval {
	var free []TimeInterval

	cursor := window.Start
	for _, b := range busy {
		if !b.End.After(window.Start) {
			continue
		}
		if !b.Start.Before(window.End) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, TimeInterval{Start: cursor, End: window.End})
	}

	return free
}
