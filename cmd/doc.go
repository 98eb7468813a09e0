// Package cmd implements the command-line interface for slotwise.
//
// This package provides the following commands:
//   - slots: One-shot search for bookable meeting slots across calendars
//   - brief: Print the weekly analytic brief for a calendar
//   - auth: Authorize a Google account for calendar access
//   - serve: Start the MCP server to provide scheduling tools for AI assistants
//   - version: Display version information
package cmd
