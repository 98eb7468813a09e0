package schedule

import (
	"fmt"
	"time"

	"github.com/teemow/slotwise/internal/interval"
)

// BusyPeriod is one occupied interval tagged with its source calendar.
// The tag exists for diagnostics only; aggregation discards it.
type BusyPeriod struct {
	Calendar string
	Interval interval.TimeInterval
}

// Event is one calendar event as the brief analyzer consumes it.
type Event struct {
	ID            string
	Summary       string
	Interval      interval.TimeInterval
	AttendeeCount int
	AllDay        bool
}

// validate fails fast on events with missing or inverted bounds.
func (e Event) validate() error {
	if e.Interval.Start.IsZero() || e.Interval.End.IsZero() {
		return fmt.Errorf("%w: event %q is missing start or end", ErrInvalidEvent, e.ID)
	}
	if !e.Interval.Start.Before(e.Interval.End) {
		return fmt.Errorf("%w: event %q has start >= end", ErrInvalidEvent, e.ID)
	}
	return nil
}

// SlotRequest describes one slot search. Constructed fresh per call and
// immutable for the life of the search.
type SlotRequest struct {
	Duration           time.Duration
	Range              interval.TimeInterval
	PrimaryWindow      interval.WorkingWindow
	ParticipantWindows []interval.WorkingWindow
	MaxResults         int
}

// Validate checks the request against the policy's safety limits.
func (r SlotRequest) Validate(policy Policy) error {
	if r.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %s", ErrInvalidRange, r.Duration)
	}
	if !r.Range.Start.Before(r.Range.End) {
		return fmt.Errorf("%w: range end %s is not after start %s",
			ErrInvalidRange, r.Range.End.Format(time.RFC3339), r.Range.Start.Format(time.RFC3339))
	}
	if r.PrimaryWindow.Location() == nil {
		return fmt.Errorf("%w: primary working window is not set", ErrInvalidRange)
	}
	if n := len(r.ParticipantWindows); n > policy.MaxParticipantZones {
		return fmt.Errorf("%w: %d participant timezones exceeds limit of %d",
			ErrInvalidRange, n, policy.MaxParticipantZones)
	}
	for _, w := range r.ParticipantWindows {
		if w.Location() == nil {
			return fmt.Errorf("%w: participant working window is not set", ErrInvalidRange)
		}
	}
	return nil
}

func (r SlotRequest) maxResults() int {
	if r.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return r.MaxResults
}

// CandidateSlot is one bookable slot of exactly the requested duration.
// LocalStarts maps each involved timezone name to the slot's wall-clock
// start there, primary zone included.
type CandidateSlot struct {
	Interval    interval.TimeInterval
	LocalStarts map[string]time.Time
}

// DayLoad is one local calendar day's aggregate within a brief.
// BusyDuration sums timed events only; all-day events are listed but do
// not contribute hours.
type DayLoad struct {
	Date         string
	Events       []Event
	BusyDuration time.Duration
}

// ConflictPair records two same-day events whose intervals overlap.
type ConflictPair struct {
	Date   string
	First  Event
	Second Event
}

// Highlight reasons.
const (
	HighlightAllDay       = "all-day event"
	HighlightLargeMeeting = "large meeting"
)

// Highlight is one notable event surfaced by the brief.
type Highlight struct {
	Event  Event
	Reason string
}

// Brief is the weekly analytic summary for one calendar.
// BusiestDay is the date with the largest summed timed duration, ties
// broken by earliest date; when the week has no timed events at all it
// falls back to the date with the most events.
type Brief struct {
	Calendar   string
	Timezone   string
	WeekStart  time.Time
	WeekEnd    time.Time
	EventCount int
	TotalHours float64
	BusiestDay string
	FreeDays   []string
	Days       []DayLoad
	Highlights []Highlight
	Conflicts  []ConflictPair
}
