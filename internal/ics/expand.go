package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

// Recurring events are capped per rule so a pathological RRULE cannot
// blow up a single fetch.
const defaultMaxOccurrences = 1000

// expandEvents turns parsed feed events into concrete occurrences that
// intersect rng. Cancelled events are dropped; recurring events are
// expanded through their RRULE with EXDATEs removed.
func expandEvents(events []parsedEvent, rng interval.TimeInterval, maxOccurrences int) ([]schedule.Event, error) {
	if maxOccurrences <= 0 {
		maxOccurrences = defaultMaxOccurrences
	}

	var out []schedule.Event
	for _, ev := range events {
		if ev.Cancelled {
			continue
		}
		if ev.RawRRule == "" {
			if occ, ok := singleOccurrence(ev, rng); ok {
				out = append(out, occ)
			}
			continue
		}

		occs, err := recurringOccurrences(ev, rng, maxOccurrences)
		if err != nil {
			return nil, err
		}
		out = append(out, occs...)
	}

	return out, nil
}

func singleOccurrence(ev parsedEvent, rng interval.TimeInterval) (schedule.Event, bool) {
	iv := interval.TimeInterval{Start: ev.Start, End: ev.End}
	if !iv.Overlaps(rng) {
		return schedule.Event{}, false
	}
	return toScheduleEvent(ev, ev.Start, ev.End, ""), true
}

func recurringOccurrences(ev parsedEvent, rng interval.TimeInterval, maxOccurrences int) ([]schedule.Event, error) {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil, fmt.Errorf("event %q: invalid RRULE %q: %v", ev.UID, ev.RawRRule, err)
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between works in the rule's own timezone. The search window widens by
	// the event duration so an occurrence that starts before the range but
	// overlaps into it is still found.
	duration := ev.End.Sub(ev.Start)
	searchStart := rng.Start.Add(-duration).In(ev.Start.Location())
	searchEnd := rng.End.In(ev.Start.Location())

	starts := set.Between(searchStart, searchEnd, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	var out []schedule.Event
	for i, occStart := range starts {
		occEnd := occStart.Add(duration)
		if ev.AllDay {
			day := time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, occStart.Location())
			occStart = day
			occEnd = day.Add(duration)
		}
		iv := interval.TimeInterval{Start: occStart, End: occEnd}
		if !iv.Overlaps(rng) {
			continue
		}
		out = append(out, toScheduleEvent(ev, occStart, occEnd, fmt.Sprintf("#%d", i)))
	}

	return out, nil
}

// toScheduleEvent builds the analyzer's event form. Recurring instances get
// an instance suffix so IDs stay unique within a fetch.
func toScheduleEvent(ev parsedEvent, start, end time.Time, instanceSuffix string) schedule.Event {
	return schedule.Event{
		ID:            ev.UID + instanceSuffix,
		Summary:       ev.Summary,
		Interval:      interval.TimeInterval{Start: start, End: end},
		AttendeeCount: ev.AttendeeCount,
		AllDay:        ev.AllDay,
	}
}
