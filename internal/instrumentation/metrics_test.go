package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context, detailedLabels bool) *Provider {
	t.Helper()
	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
		DetailedLabels:  detailedLabels,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordSlotSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordSlotSearch(ctx, StatusSuccess, 7)
	metrics.RecordSlotSearch(ctx, StatusSuccess, 0)
	metrics.RecordSlotSearch(ctx, StatusError, 0)
}

func TestMetrics_RecordBriefComputation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordBriefComputation(ctx, StatusSuccess)
	metrics.RecordBriefComputation(ctx, StatusError)
}

func TestMetrics_RecordProviderFetch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordProviderFetch(ctx, FetchFreeBusy, StatusSuccess, 200*time.Millisecond)
	metrics.RecordProviderFetch(ctx, FetchEvents, StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "calendar_find_meeting_slots", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "calendar_weekly_brief", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordToolInvocationWithAccount(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Without detailed labels the account label is ignored.
	metrics := newTestProvider(t, ctx, false).Metrics()
	metrics.RecordToolInvocationWithAccount(ctx, "calendar_find_meeting_slots", StatusSuccess, "user@example.com", 100*time.Millisecond)

	// With detailed labels the account label is included.
	detailed := newTestProvider(t, ctx, true).Metrics()
	detailed.RecordToolInvocationWithAccount(ctx, "calendar_find_meeting_slots", StatusSuccess, "user@example.com", 100*time.Millisecond)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All these should not panic even with nil underlying instruments
	metrics.RecordSlotSearch(ctx, StatusSuccess, 3)
	metrics.RecordBriefComputation(ctx, StatusSuccess)
	metrics.RecordProviderFetch(ctx, FetchFreeBusy, StatusSuccess, 200*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocationWithAccount(ctx, "test_tool", StatusSuccess, "user@example.com", 100*time.Millisecond)
}

func TestMetrics_NilReceiver(t *testing.T) {
	ctx := context.Background()

	var metrics *Metrics

	// Nil receiver must be safe: the engine calls these unconditionally.
	metrics.RecordSlotSearch(ctx, StatusSuccess, 1)
	metrics.RecordBriefComputation(ctx, StatusSuccess)
	metrics.RecordProviderFetch(ctx, FetchEvents, StatusSuccess, time.Millisecond)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, time.Millisecond)
}

func TestStatusFromError(t *testing.T) {
	if got := StatusFromError(nil); got != StatusSuccess {
		t.Errorf("StatusFromError(nil) = %q, want %q", got, StatusSuccess)
	}
	if got := StatusFromError(context.Canceled); got != StatusError {
		t.Errorf("StatusFromError(err) = %q, want %q", got, StatusError)
	}
}
