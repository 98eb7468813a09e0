// Package scheduling_tools registers the scheduling MCP tools:
// calendar_find_meeting_slots, calendar_weekly_brief, and
// calendar_query_freebusy.
//
// The handlers are a thin layer: they parse and validate tool arguments,
// resolve the account's scheduling engine, and render engine results as
// text. Bad input is returned as a tool error result, never as a Go error.
package scheduling_tools
