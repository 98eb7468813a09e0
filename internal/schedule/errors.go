package schedule

import "errors"

var (
	// ErrInvalidRange indicates a degenerate search request: an inverted
	// or empty range, a non-positive duration, or too many participant
	// windows. Detected at the request boundary, never mid-walk.
	ErrInvalidRange = errors.New("invalid search range")

	// ErrInvalidEvent indicates a malformed calendar event (missing or
	// inverted start/end). A single bad event fails the whole brief.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrSourceUnavailable indicates the calendar data provider failed.
	// The engine propagates it unchanged; it never guesses availability
	// from partial data.
	ErrSourceUnavailable = errors.New("calendar source unavailable")
)
