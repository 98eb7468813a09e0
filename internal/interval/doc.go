// Package interval provides the timezone-aware time types underlying the
// scheduling engine: half-open instant intervals with merge/subtract set
// operations, and per-timezone working-hour windows.
//
// All other packages depend on this one for interval arithmetic and local
// wall-clock conversion; date/timezone logic is not reimplemented elsewhere.
package interval
