// Package instrumentation provides OpenTelemetry instrumentation for the
// slotwise MCP server.
//
// # Metrics
//
// Engine metrics:
//   - slot_searches_total: Counter of meeting slot searches by status
//   - slots_found: Histogram of candidate slots returned per search
//   - brief_computations_total: Counter of weekly brief computations by status
//
// Provider metrics:
//   - provider_fetches_total: Counter of calendar data fetches by operation and status
//   - provider_fetch_duration_seconds: Histogram of fetch durations
//
// MCP tool metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and calendar
// provider fetches (provider.<operation>).
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: slotwise)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "slotwise",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordSlotSearch(ctx, "success", len(slots))
package instrumentation
