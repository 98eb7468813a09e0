package schedule

import "github.com/teemow/slotwise/internal/interval"

// MergeBusy collapses busy periods from any number of calendars into a
// single sorted, non-overlapping timeline. Source identity is dropped:
// any calendar being busy makes the participant unavailable (union,
// never intersection). Empty input means free for the whole range.
func MergeBusy(periods []BusyPeriod) []interval.TimeInterval {
	if len(periods) == 0 {
		return nil
	}
	intervals := make([]interval.TimeInterval, 0, len(periods))
	for _, p := range periods {
		intervals = append(intervals, p.Interval)
	}
	return interval.Merge(intervals)
}
