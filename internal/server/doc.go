// Package server provides the MCP server context and its operational
// HTTP endpoints.
//
// ServerContext manages per-account Google Calendar clients with lazy
// initialization and builds a scheduling engine per account, sharing the
// policy, response cache, and instrumentation across tool handlers.
//
// HealthChecker exposes /healthz and /readyz probes for the HTTP
// transport, and MetricsServer serves Prometheus metrics on a dedicated
// port so operational data never mixes with MCP traffic.
package server
