// Package calendar provides the Google Calendar data source for the
// scheduling engine.
//
// The Client wraps the Google Calendar API for one authenticated account
// and implements schedule.CalendarProvider: busy intervals come from the
// freebusy endpoint, weekly events from the events list with recurring
// events expanded to single instances.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	busy, err := client.FetchBusy(ctx, []string{"primary"}, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
