package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/slotwise/internal/google"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

// Client wraps the Google Calendar service for one authenticated account.
// It implements schedule.CalendarProvider.
type Client struct {
	svc           *calendar.Service
	account       string
	tokenProvider google.TokenProvider
}

var _ schedule.CalendarProvider = (*Client)(nil)

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return HasTokenForAccountWithProvider(account, provider)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount(google.DefaultAccount)
}

// NewClientForAccountWithProvider creates a Calendar client authenticated
// for the given account, using tokens from the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf, err := google.GetOAuthConfig()
	if err != nil {
		return nil, err
	}
	tokenSource := conf.TokenSource(ctx, token)

	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a Calendar client for the given account using
// the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, google.DefaultAccount)
}

// NewClientWithProvider creates a Calendar client for the default account
// using the provided token provider.
func NewClientWithProvider(ctx context.Context, provider google.TokenProvider) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, google.DefaultAccount, provider)
}

// FetchBusy queries the freebusy endpoint for the given calendars and
// returns every busy interval tagged with its source calendar. A transport
// failure or a per-calendar error reported by the API both surface as
// schedule.ErrSourceUnavailable so callers can distinguish source outages
// from bad input.
func (c *Client) FetchBusy(ctx context.Context, calendarIDs []string, rng interval.TimeInterval) ([]schedule.BusyPeriod, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: rng.Start.Format(time.RFC3339),
		TimeMax: rng.End.Format(time.RFC3339),
		Items:   items,
	}

	result, err := c.svc.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: freebusy query failed: %v", schedule.ErrSourceUnavailable, err)
	}

	var periods []schedule.BusyPeriod
	for calID, cal := range result.Calendars {
		for _, calErr := range cal.Errors {
			return nil, fmt.Errorf("%w: calendar %q: %s", schedule.ErrSourceUnavailable, calID, calErr.Reason)
		}
		for _, busy := range cal.Busy {
			iv, err := parseBusyRange(busy)
			if err != nil {
				return nil, fmt.Errorf("%w: calendar %q: %v", schedule.ErrSourceUnavailable, calID, err)
			}
			periods = append(periods, schedule.BusyPeriod{Calendar: calID, Interval: iv})
		}
	}

	return periods, nil
}

// FetchWeekEvents lists one calendar's events within the range, expanded to
// single instances and ordered by start time. Cancelled events are skipped.
// All-day events carry date-only bounds from the API; those are anchored in
// the range's timezone so they group onto the right local day.
func (c *Client) FetchWeekEvents(ctx context.Context, calendarID string, rng interval.TimeInterval) ([]schedule.Event, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(rng.Start.Format(time.RFC3339)).
		TimeMax(rng.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events for calendar %q: %v", schedule.ErrSourceUnavailable, calendarID, err)
	}

	loc := rng.Start.Location()
	var events []schedule.Event
	for _, item := range result.Items {
		if item.Status == "cancelled" {
			continue
		}
		ev, err := toScheduleEvent(item, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: calendar %q: %v", schedule.ErrSourceUnavailable, calendarID, err)
		}
		events = append(events, ev)
	}

	return events, nil
}

// ListCalendars lists all calendars accessible to the account.
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}

	return calendars, nil
}

// GetCalendar retrieves information about a specific calendar.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*CalendarInfo, error) {
	entry, err := c.svc.CalendarList.Get(calendarID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	info := toCalendarInfo(entry)
	return &info, nil
}

// GetPrimaryCalendar retrieves information about the primary calendar.
func (c *Client) GetPrimaryCalendar(ctx context.Context) (*CalendarInfo, error) {
	return c.GetCalendar(ctx, "primary")
}

func parseBusyRange(busy *calendar.TimePeriod) (interval.TimeInterval, error) {
	start, err := time.Parse(time.RFC3339, busy.Start)
	if err != nil {
		return interval.TimeInterval{}, fmt.Errorf("invalid busy start %q", busy.Start)
	}
	end, err := time.Parse(time.RFC3339, busy.End)
	if err != nil {
		return interval.TimeInterval{}, fmt.Errorf("invalid busy end %q", busy.End)
	}
	return interval.New(start, end)
}
