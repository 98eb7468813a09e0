package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent is the normalized representation of one VEVENT before
// recurrence expansion.
type parsedEvent struct {
	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	// Transparent events block no time and are excluded from busy data.
	Transparent bool
	Cancelled   bool

	AttendeeCount int

	RawRRule string
	ExDates  []time.Time
}

// parseFeed parses a single ICS payload into normalized events. Individual
// malformed VEVENTs are skipped so one broken entry does not take down the
// whole feed.
func parseFeed(body []byte) ([]parsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid ICS payload: %w", err)
	}

	events := make([]parsedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (parsedEvent, error) {
	var out parsedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	// The library's helpers resolve VTIMEZONE/TZID into proper locations.
	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("event %q: missing or invalid DTSTART", out.UID)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, fmt.Errorf("event %q: missing or invalid DTEND", out.UID)
	}
	out.Start = start
	out.End = end

	out.AllDay = isAllDayStart(ve)
	if out.AllDay {
		// Date-only bounds come back at midnight. A DTEND equal to DTSTART
		// (some producers omit the exclusive end) still spans the full day.
		if !out.End.After(out.Start) {
			out.End = out.Start.Add(24 * time.Hour)
		}
	}

	if p := ve.GetProperty("TRANSP"); p != nil && strings.EqualFold(p.Value, "TRANSPARENT") {
		out.Transparent = true
	}
	if p := ve.GetProperty("STATUS"); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		out.Cancelled = true
	}

	out.AttendeeCount = len(ve.Attendees())

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	// EXDATE can appear multiple times and hold comma-separated values.
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, out.Start.Location()); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// isAllDayStart reports whether DTSTART is a date-only value, either via
// VALUE=DATE or a value without a time component.
func isAllDayStart(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses the basic ICS date and date-time forms used by
// EXDATE values. Values without a zone designator resolve in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}
