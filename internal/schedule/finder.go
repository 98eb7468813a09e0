package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/slotwise/internal/instrumentation"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/logging"
)

// Engine wires the pure slot-search and brief computations to a calendar
// data provider, adding logging and metrics around the provider calls.
// An Engine is safe for concurrent use: it holds no per-request state.
type Engine struct {
	provider CalendarProvider
	policy   Policy
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
}

// EngineConfig carries the optional collaborators of an Engine. Zero
// values fall back to DefaultPolicy, slog.Default and no-op metrics.
type EngineConfig struct {
	Policy  Policy
	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// NewEngine creates an engine over the given provider.
func NewEngine(provider CalendarProvider, cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider: provider,
		policy:   cfg.Policy.normalize(),
		logger:   logger,
		metrics:  cfg.Metrics,
	}
}

// Policy returns the engine's normalized policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// FindSlots fetches busy data for the given calendars and returns ranked
// candidate slots for the request. Provider failures propagate unchanged.
func (e *Engine) FindSlots(ctx context.Context, calendarIDs []string, req SlotRequest) ([]CandidateSlot, error) {
	if err := req.Validate(e.policy); err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	busy, err := e.provider.FetchBusy(ctx, calendarIDs, req.Range)
	e.metrics.RecordProviderFetch(ctx, instrumentation.FetchFreeBusy, instrumentation.StatusFromError(err), time.Since(fetchStart))
	if err != nil {
		e.metrics.RecordSlotSearch(ctx, instrumentation.StatusError, 0)
		return nil, err
	}

	slots, err := FindSlots(req, MergeBusy(busy), e.policy)
	if err != nil {
		e.metrics.RecordSlotSearch(ctx, instrumentation.StatusError, 0)
		return nil, err
	}

	e.metrics.RecordSlotSearch(ctx, instrumentation.StatusSuccess, len(slots))
	e.logger.InfoContext(ctx, "slot search complete",
		slog.String(logging.KeyOperation, "find_slots"),
		slog.String(logging.KeyTimezone, req.PrimaryWindow.Timezone),
		slog.Int(logging.KeyCalendars, len(calendarIDs)),
		slog.Int(logging.KeySlots, len(slots)),
		slog.Int("busy_periods", len(busy)))
	return slots, nil
}

// FindSlots is the pure slot search: given a request and an already
// merged busy timeline, it walks the range day by day in the primary
// timezone and emits candidate slots in chronological order.
//
// Results are deterministic for identical inputs. An empty result with a
// nil error means no slot fits; that is a legitimate outcome, not a
// failure.
func FindSlots(req SlotRequest, busy []interval.TimeInterval, policy Policy) ([]CandidateSlot, error) {
	policy = policy.normalize()
	if err := req.Validate(policy); err != nil {
		return nil, err
	}

	loc := req.PrimaryWindow.Location()
	limit := req.maxResults()
	merged := interval.Merge(busy)

	var slots []CandidateSlot
	y, m, d := req.Range.Start.In(loc).Date()
	for day := time.Date(y, m, d, 0, 0, 0, 0, loc); day.Before(req.Range.End); day = nextLocalDay(day, loc) {
		if !req.PrimaryWindow.IsWorkday(day) {
			continue
		}

		work := req.PrimaryWindow.DayInterval(day)
		if work.Start.Before(req.Range.Start) {
			work.Start = req.Range.Start
		}
		if work.End.After(req.Range.End) {
			work.End = req.Range.End
		}
		if !work.Start.Before(work.End) {
			continue
		}

		for _, block := range interval.Subtract(work, merged) {
			// Slide a duration-length window through the free block.
			// Each emitted slot is checked against every participant's
			// local working hours individually: within one long block,
			// early slots can fail a participant that later slots pass.
			for t := block.Start; !t.Add(req.Duration).After(block.End); t = t.Add(policy.SlotStep) {
				slot := interval.TimeInterval{Start: t, End: t.Add(req.Duration)}
				if !fitsParticipants(slot, req.ParticipantWindows) {
					continue
				}
				slots = append(slots, CandidateSlot{
					Interval:    slot,
					LocalStarts: localStarts(slot.Start, req),
				})
				if len(slots) == limit {
					return slots, nil
				}
			}
		}
	}

	return slots, nil
}

// fitsParticipants reports whether the slot lies within every
// participant's working hours on a single local calendar date. A slot
// crossing local midnight in any participant zone is rejected, not split.
func fitsParticipants(slot interval.TimeInterval, windows []interval.WorkingWindow) bool {
	for _, w := range windows {
		if !w.ContainsInterval(slot) {
			return false
		}
	}
	return true
}

func localStarts(start time.Time, req SlotRequest) map[string]time.Time {
	starts := make(map[string]time.Time, len(req.ParticipantWindows)+1)
	starts[req.PrimaryWindow.Timezone] = start.In(req.PrimaryWindow.Location())
	for _, w := range req.ParticipantWindows {
		starts[w.Timezone] = start.In(w.Location())
	}
	return starts
}

// nextLocalDay advances to the next local midnight. Built from the wall
// clock rather than Add(24h) so DST transition days stay aligned.
func nextLocalDay(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
