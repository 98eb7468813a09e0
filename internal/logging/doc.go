// Package logging provides structured logging utilities for the slotwise
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "find_slots")
//	logger.Info("search finished",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("calendar queried",
//	    logging.UserHash(calendarID))
//
// Calendar identifiers are typically account email addresses, so they are
// hashed before logging to allow correlation without exposing PII.
package logging
