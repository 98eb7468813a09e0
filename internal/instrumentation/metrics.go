package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics provides methods for recording observability metrics.
// All Record methods are safe on a nil receiver so callers never have to
// guard for disabled instrumentation.
type Metrics struct {
	// Engine metrics
	slotSearchesTotal      metric.Int64Counter
	slotsFound             metric.Int64Histogram
	briefComputationsTotal metric.Int64Counter

	// Provider metrics
	providerFetchesTotal  metric.Int64Counter
	providerFetchDuration metric.Float64Histogram

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// Engine metrics
	m.slotSearchesTotal, err = meter.Int64Counter(
		"slot_searches_total",
		metric.WithDescription("Total number of meeting slot searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot_searches_total counter: %w", err)
	}

	m.slotsFound, err = meter.Int64Histogram(
		"slots_found",
		metric.WithDescription("Number of candidate slots returned per search"),
		metric.WithUnit("{slot}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 20, 50),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slots_found histogram: %w", err)
	}

	m.briefComputationsTotal, err = meter.Int64Counter(
		"brief_computations_total",
		metric.WithDescription("Total number of weekly brief computations"),
		metric.WithUnit("{brief}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create brief_computations_total counter: %w", err)
	}

	// Provider metrics
	m.providerFetchesTotal, err = meter.Int64Counter(
		"provider_fetches_total",
		metric.WithDescription("Total number of calendar provider fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider_fetches_total counter: %w", err)
	}

	m.providerFetchDuration, err = meter.Float64Histogram(
		"provider_fetch_duration_seconds",
		metric.WithDescription("Calendar provider fetch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider_fetch_duration_seconds histogram: %w", err)
	}

	// MCP Tool metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordSlotSearch records one slot search and the number of slots it
// returned. Status should be "success" or "error".
func (m *Metrics) RecordSlotSearch(ctx context.Context, status string, found int) {
	if m == nil || m.slotSearchesTotal == nil || m.slotsFound == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.slotSearchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if status == StatusSuccess {
		m.slotsFound.Record(ctx, int64(found), metric.WithAttributes(attrs...))
	}
}

// RecordBriefComputation records one weekly brief computation.
// Status should be "success" or "error".
func (m *Metrics) RecordBriefComputation(ctx context.Context, status string) {
	if m == nil || m.briefComputationsTotal == nil {
		return // Instrumentation not initialized
	}

	m.briefComputationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}

// RecordProviderFetch records a calendar provider fetch with operation
// ("freebusy" or "events"), status, and duration.
func (m *Metrics) RecordProviderFetch(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.providerFetchesTotal == nil || m.providerFetchDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.providerFetchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.providerFetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocationWithAccount records an MCP tool invocation including
// the account label when detailedLabels is enabled. The account label is
// high-cardinality and omitted by default.
func (m *Metrics) RecordToolInvocationWithAccount(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
