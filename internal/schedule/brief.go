package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/teemow/slotwise/internal/instrumentation"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/logging"
)

const dateLayout = "2006-01-02"

// WeekBounds returns the week containing t in the given zone: local
// Monday midnight up to but not including the next Monday midnight.
func WeekBounds(t time.Time, loc *time.Location) interval.TimeInterval {
	local := t.In(loc)
	y, m, d := local.Date()
	back := (int(local.Weekday()) + 6) % 7
	return interval.TimeInterval{
		Start: time.Date(y, m, d-back, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d-back+7, 0, 0, 0, 0, loc),
	}
}

// WeeklyBrief fetches one calendar's events for the week containing
// weekOf and computes the analytic brief in the display timezone.
func (e *Engine) WeeklyBrief(ctx context.Context, calendarID string, weekOf time.Time, timezone string) (Brief, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Brief{}, fmt.Errorf("%w: unknown display timezone %q", ErrInvalidRange, timezone)
	}
	week := WeekBounds(weekOf, loc)

	fetchStart := time.Now()
	events, err := e.provider.FetchWeekEvents(ctx, calendarID, week)
	e.metrics.RecordProviderFetch(ctx, instrumentation.FetchEvents, instrumentation.StatusFromError(err), time.Since(fetchStart))
	if err != nil {
		e.metrics.RecordBriefComputation(ctx, instrumentation.StatusError)
		return Brief{}, err
	}

	brief, err := BuildBrief(calendarID, events, week, loc, e.policy)
	if err != nil {
		e.metrics.RecordBriefComputation(ctx, instrumentation.StatusError)
		return Brief{}, err
	}

	e.metrics.RecordBriefComputation(ctx, instrumentation.StatusSuccess)
	e.logger.InfoContext(ctx, "weekly brief computed",
		slog.String(logging.KeyOperation, "weekly_brief"),
		slog.String(logging.KeyCalendar, calendarID),
		slog.String(logging.KeyTimezone, timezone),
		slog.Int("events", brief.EventCount),
		slog.Int("conflicts", len(brief.Conflicts)))
	return brief, nil
}

// BuildBrief is the pure brief computation over one week of events.
// A single malformed event fails the whole brief; there are no partial
// results.
func BuildBrief(calendarID string, events []Event, week interval.TimeInterval, loc *time.Location, policy Policy) (Brief, error) {
	policy = policy.normalize()

	for _, ev := range events {
		if err := ev.validate(); err != nil {
			return Brief{}, err
		}
	}

	byDate := make(map[string][]Event)
	for _, ev := range events {
		key := ev.Interval.Start.In(loc).Format(dateLayout)
		byDate[key] = append(byDate[key], ev)
	}

	dates := make([]string, 0, len(byDate))
	for key := range byDate {
		dates = append(dates, key)
	}
	sort.Strings(dates)

	brief := Brief{
		Calendar:   calendarID,
		Timezone:   loc.String(),
		WeekStart:  week.Start,
		WeekEnd:    week.End,
		EventCount: len(events),
	}

	var busiest time.Duration
	for _, date := range dates {
		dayEvents := byDate[date]
		sort.Slice(dayEvents, func(i, j int) bool {
			a, b := dayEvents[i], dayEvents[j]
			if !a.Interval.Start.Equal(b.Interval.Start) {
				return a.Interval.Start.Before(b.Interval.Start)
			}
			return a.ID < b.ID
		})

		var load time.Duration
		for _, ev := range dayEvents {
			if !ev.AllDay {
				load += ev.Interval.Duration()
			}
		}
		brief.Days = append(brief.Days, DayLoad{
			Date:         date,
			Events:       dayEvents,
			BusyDuration: load,
		})
		brief.TotalHours += load.Hours()

		// Strictly-greater comparison over ascending dates keeps the
		// earliest date on ties.
		if load > busiest {
			busiest = load
			brief.BusiestDay = date
		}

		for _, ev := range dayEvents {
			if ev.AllDay {
				brief.Highlights = append(brief.Highlights, Highlight{Event: ev, Reason: HighlightAllDay})
			}
			if ev.AttendeeCount >= policy.LargeMeetingThreshold {
				brief.Highlights = append(brief.Highlights, Highlight{Event: ev, Reason: HighlightLargeMeeting})
			}
		}

		brief.Conflicts = append(brief.Conflicts, dayConflicts(date, dayEvents)...)
	}

	// A week holding only all-day events has zero timed load everywhere.
	// Fall back to event count so the busiest day is still reported.
	if brief.BusiestDay == "" && len(dates) > 0 {
		most := 0
		for _, date := range dates {
			if n := len(byDate[date]); n > most {
				most = n
				brief.BusiestDay = date
			}
		}
	}

	brief.FreeDays = freeWeekdays(week, loc, byDate)
	return brief, nil
}

// dayConflicts reports every overlapping pair among one day's timed
// events. An event overlapping several others appears in several pairs.
func dayConflicts(date string, events []Event) []ConflictPair {
	var pairs []ConflictPair
	for i := 0; i < len(events); i++ {
		if events[i].AllDay {
			continue
		}
		for j := i + 1; j < len(events); j++ {
			if events[j].AllDay {
				continue
			}
			if events[i].Interval.Overlaps(events[j].Interval) {
				pairs = append(pairs, ConflictPair{Date: date, First: events[i], Second: events[j]})
			}
		}
	}
	return pairs
}

// freeWeekdays lists the Monday-to-Friday dates of the week with no
// events at all, all-day ones included.
func freeWeekdays(week interval.TimeInterval, loc *time.Location, byDate map[string][]Event) []string {
	var free []string
	y, m, d := week.Start.In(loc).Date()
	for day := time.Date(y, m, d, 0, 0, 0, 0, loc); day.Before(week.End); day = nextLocalDay(day, loc) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		key := day.Format(dateLayout)
		if len(byDate[key]) == 0 {
			free = append(free, key)
		}
	}
	return free
}
