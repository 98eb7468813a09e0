package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow is returned when a working window is constructed with
// out-of-range hours, an inverted hour range, or an unknown timezone.
var ErrInvalidWindow = errors.New("invalid working window")

// WorkingWindow describes which wall-clock hours on which weekdays are
// eligible for scheduling, for one participant in one IANA timezone.
// The zone is resolved once at construction; a window is immutable and
// lives only for the duration of a single request.
type WorkingWindow struct {
	Timezone        string
	StartHour       int
	EndHour         int
	ExcludeWeekends bool

	loc *time.Location
}

// NewWorkingWindow validates hours (0-23, start before end) and resolves
// the IANA zone name.
func NewWorkingWindow(timezone string, startHour, endHour int, excludeWeekends bool) (WorkingWindow, error) {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 {
		return WorkingWindow{}, fmt.Errorf("%w: hours must be within 0-23, got %d-%d",
			ErrInvalidWindow, startHour, endHour)
	}
	if startHour >= endHour {
		return WorkingWindow{}, fmt.Errorf("%w: start hour %d must be before end hour %d",
			ErrInvalidWindow, startHour, endHour)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return WorkingWindow{}, fmt.Errorf("%w: unknown timezone %q: %v",
			ErrInvalidWindow, timezone, err)
	}
	return WorkingWindow{
		Timezone:        timezone,
		StartHour:       startHour,
		EndHour:         endHour,
		ExcludeWeekends: excludeWeekends,
		loc:             loc,
	}, nil
}

// Location returns the resolved IANA zone.
func (w WorkingWindow) Location() *time.Location {
	return w.loc
}

// DayInterval returns the window's working interval for the local calendar
// date of day in the window's zone. Building the bounds from the local
// wall clock each day keeps the window DST-correct: on a transition day
// the interval still runs from StartHour to EndHour local time, whatever
// the UTC offset does.
func (w WorkingWindow) DayInterval(day time.Time) TimeInterval {
	local := day.In(w.loc)
	y, m, d := local.Date()
	return TimeInterval{
		Start: time.Date(y, m, d, w.StartHour, 0, 0, 0, w.loc),
		End:   time.Date(y, m, d, w.EndHour, 0, 0, 0, w.loc),
	}
}

// IsWorkday reports whether the local calendar date of t is eligible
// under the window's weekend rule.
func (w WorkingWindow) IsWorkday(t time.Time) bool {
	if !w.ExcludeWeekends {
		return true
	}
	wd := t.In(w.loc).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ContainsInterval reports whether the entire interval falls within the
// window's working hours on a single local calendar date in the window's
// zone. An interval that crosses local midnight here never qualifies:
// the day's working interval ends at EndHour at the latest, so any
// midnight-spanning interval fails the bounds check outright.
func (w WorkingWindow) ContainsInterval(iv TimeInterval) bool {
	localStart := iv.Start.In(w.loc)
	if !w.IsWorkday(localStart) {
		return false
	}
	day := w.DayInterval(localStart)
	return !localStart.Before(day.Start) && !iv.End.In(w.loc).After(day.End)
}
