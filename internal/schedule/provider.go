package schedule

import (
	"context"

	"github.com/teemow/slotwise/internal/interval"
)

// BusyProvider supplies merged-input busy data for a set of calendars.
// Implementations wrap failures in ErrSourceUnavailable; the engine
// propagates them unchanged.
type BusyProvider interface {
	FetchBusy(ctx context.Context, calendarIDs []string, rng interval.TimeInterval) ([]BusyPeriod, error)
}

// EventProvider supplies one calendar's events for a range, with the
// attendee counts and all-day flags the brief analyzer needs.
type EventProvider interface {
	FetchWeekEvents(ctx context.Context, calendarID string, rng interval.TimeInterval) ([]Event, error)
}

// CalendarProvider is the full data contract the engine consumes.
type CalendarProvider interface {
	BusyProvider
	EventProvider
}
