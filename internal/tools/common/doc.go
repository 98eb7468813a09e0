// Package common provides shared helpers for MCP tool handlers: account
// extraction from tool arguments and the instrumentation wrapper that adds
// metrics and tracing around every registered tool.
package common
