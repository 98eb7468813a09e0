package calendar

import (
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

const dateOnlyLayout = "2006-01-02"

// CalendarInfo represents information about a calendar
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// toScheduleEvent converts a Google Calendar event into the form the brief
// analyzer consumes. Timed events carry RFC3339 bounds; all-day events carry
// date-only bounds, which are anchored at local midnight in loc.
func toScheduleEvent(item *calendar.Event, loc *time.Location) (schedule.Event, error) {
	if item == nil {
		return schedule.Event{}, fmt.Errorf("nil event")
	}

	start, allDay, err := parseEventTime(item.Start, loc)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("event %q: %v", item.Id, err)
	}
	end, _, err := parseEventTime(item.End, loc)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("event %q: %v", item.Id, err)
	}

	iv, err := interval.New(start, end)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("event %q: start %s is not before end %s",
			item.Id, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return schedule.Event{
		ID:            item.Id,
		Summary:       item.Summary,
		Interval:      iv,
		AttendeeCount: len(item.Attendees),
		AllDay:        allDay,
	}, nil
}

// parseEventTime resolves one event boundary. The API sets exactly one of
// DateTime and Date; a date-only value marks the event as all-day.
func parseEventTime(edt *calendar.EventDateTime, loc *time.Location) (time.Time, bool, error) {
	if edt == nil {
		return time.Time{}, false, fmt.Errorf("missing event time")
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid datetime %q", edt.DateTime)
		}
		return t, false, nil
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation(dateOnlyLayout, edt.Date, loc)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid date %q", edt.Date)
		}
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("event time has neither datetime nor date")
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}
