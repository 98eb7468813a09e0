package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/logging"
	"github.com/teemow/slotwise/internal/schedule"
)

const maxFeedBytes = 10 << 20

// Provider reads calendars from ICS feeds. Calendar IDs are either local
// file paths or http(s) URLs; each fetch re-reads the source, so callers
// that poll should wrap it in schedule.NewCachedProvider.
type Provider struct {
	client         *http.Client
	logger         logging.Logger
	maxOccurrences int
}

var _ schedule.CalendarProvider = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *Provider) { p.client = client }
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(logger logging.Logger) ProviderOption {
	return func(p *Provider) { p.logger = logger }
}

// WithMaxOccurrences caps recurrence expansion per event.
func WithMaxOccurrences(n int) ProviderOption {
	return func(p *Provider) { p.maxOccurrences = n }
}

// NewProvider creates an ICS-backed calendar provider.
func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		client:         &http.Client{Timeout: 30 * time.Second},
		logger:         logging.NewSlogAdapter(nil),
		maxOccurrences: defaultMaxOccurrences,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchBusy loads every source and returns the occupied intervals of all
// opaque events. Transparent events block no time and all-day events only
// count when marked opaque, matching how calendar UIs treat them.
func (p *Provider) FetchBusy(ctx context.Context, calendarIDs []string, rng interval.TimeInterval) ([]schedule.BusyPeriod, error) {
	var periods []schedule.BusyPeriod
	for _, id := range calendarIDs {
		events, err := p.fetchSource(ctx, id, rng, true)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			periods = append(periods, schedule.BusyPeriod{Calendar: id, Interval: ev.Interval})
		}
	}
	return periods, nil
}

// FetchWeekEvents loads one source and returns all its occurrences within
// the range, transparent events included.
func (p *Provider) FetchWeekEvents(ctx context.Context, calendarID string, rng interval.TimeInterval) ([]schedule.Event, error) {
	return p.fetchSource(ctx, calendarID, rng, false)
}

func (p *Provider) fetchSource(ctx context.Context, id string, rng interval.TimeInterval, busyOnly bool) ([]schedule.Event, error) {
	body, err := p.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: source %q: %v", schedule.ErrSourceUnavailable, id, err)
	}

	parsed, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("%w: source %q: %v", schedule.ErrSourceUnavailable, id, err)
	}

	if busyOnly {
		kept := parsed[:0]
		for _, ev := range parsed {
			if ev.Transparent {
				continue
			}
			kept = append(kept, ev)
		}
		parsed = kept
	}

	events, err := expandEvents(parsed, rng, p.maxOccurrences)
	if err != nil {
		return nil, fmt.Errorf("%w: source %q: %v", schedule.ErrSourceUnavailable, id, err)
	}

	p.logger.Debug("ics source loaded",
		logging.Calendar(id),
		"events", len(events),
	)

	return events, nil
}

func (p *Provider) load(ctx context.Context, id string) ([]byte, error) {
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		return p.loadURL(ctx, id)
	}
	return os.ReadFile(id)
}

func (p *Provider) loadURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
}
