// Package schedule implements the availability and scheduling engine:
// multi-calendar busy aggregation, ranked meeting-slot search across
// participant timezones, and the weekly analytic brief.
//
// The engine core (FindSlots, BuildBrief) is pure computation over
// request-scoped values. Calendar data reaches it through the
// CalendarProvider contract; the Engine type wires a provider to the
// core and adds logging and metrics around the provider calls.
package schedule
