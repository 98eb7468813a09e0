package schedule

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/teemow/slotwise/internal/interval"
)

// CachedProvider wraps a CalendarProvider with a TTL-bounded in-memory
// cache. It is meant to be constructed per request scope by callers that
// fan several searches out over one data pull, never held as ambient
// global state. A zero or negative TTL disables caching entirely.
type CachedProvider struct {
	inner CalendarProvider
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	busy   map[string]busyEntry
	events map[string]eventsEntry
}

type busyEntry struct {
	fetched time.Time
	periods []BusyPeriod
}

type eventsEntry struct {
	fetched time.Time
	events  []Event
}

// NewCachedProvider creates the decorator over inner.
func NewCachedProvider(inner CalendarProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		ttl:    ttl,
		now:    time.Now,
		busy:   make(map[string]busyEntry),
		events: make(map[string]eventsEntry),
	}
}

// FetchBusy serves from cache when a fresh entry exists for the same
// calendar set and range; otherwise it delegates and stores the result.
// Errors are never cached.
func (c *CachedProvider) FetchBusy(ctx context.Context, calendarIDs []string, rng interval.TimeInterval) ([]BusyPeriod, error) {
	key := busyKey(calendarIDs, rng)

	c.mu.Lock()
	if entry, ok := c.busy[key]; ok && c.fresh(entry.fetched) {
		periods := append([]BusyPeriod(nil), entry.periods...)
		c.mu.Unlock()
		return periods, nil
	}
	c.mu.Unlock()

	periods, err := c.inner.FetchBusy(ctx, calendarIDs, rng)
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.busy[key] = busyEntry{fetched: c.now(), periods: append([]BusyPeriod(nil), periods...)}
		c.mu.Unlock()
	}
	return periods, nil
}

// FetchWeekEvents mirrors FetchBusy for the event contract.
func (c *CachedProvider) FetchWeekEvents(ctx context.Context, calendarID string, rng interval.TimeInterval) ([]Event, error) {
	key := calendarID + "|" + rangeKey(rng)

	c.mu.Lock()
	if entry, ok := c.events[key]; ok && c.fresh(entry.fetched) {
		events := append([]Event(nil), entry.events...)
		c.mu.Unlock()
		return events, nil
	}
	c.mu.Unlock()

	events, err := c.inner.FetchWeekEvents(ctx, calendarID, rng)
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.events[key] = eventsEntry{fetched: c.now(), events: append([]Event(nil), events...)}
		c.mu.Unlock()
	}
	return events, nil
}

func (c *CachedProvider) fresh(fetched time.Time) bool {
	return c.ttl > 0 && c.now().Sub(fetched) < c.ttl
}

func busyKey(calendarIDs []string, rng interval.TimeInterval) string {
	ids := append([]string(nil), calendarIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ",") + "|" + rangeKey(rng)
}

func rangeKey(rng interval.TimeInterval) string {
	return rng.Start.UTC().Format(time.RFC3339Nano) + "/" + rng.End.UTC().Format(time.RFC3339Nano)
}
