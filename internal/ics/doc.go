// Package ics provides an ICS-feed calendar source for the scheduling
// engine.
//
// The Provider implements schedule.CalendarProvider over local .ics files
// and http(s) feed URLs. Recurring events are expanded through their RRULE
// with EXDATE exceptions removed, capped per event to keep pathological
// rules bounded. Events marked TRANSP:TRANSPARENT appear in weekly briefs
// but never contribute busy time.
package ics
