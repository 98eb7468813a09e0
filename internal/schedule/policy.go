package schedule

import "time"

// Tunables the engine falls back to when a Policy field is unset.
const (
	DefaultSlotStep              = 30 * time.Minute
	DefaultLargeMeetingThreshold = 5
	DefaultMaxParticipantZones   = 8
	DefaultMaxResults            = 10

	// minSlotStep bounds the day walk; steps below this would make a
	// single free block emit thousands of near-identical slots.
	minSlotStep = 5 * time.Minute
)

// Policy carries the engine's tunable constants. The zero value means
// "use defaults"; normalize resolves it before any computation.
type Policy struct {
	// SlotStep is the sliding-window advance between emitted slots
	// within one free block.
	SlotStep time.Duration

	// LargeMeetingThreshold is the attendee count at which an event
	// becomes a brief highlight.
	LargeMeetingThreshold int

	// MaxParticipantZones caps the number of participant working
	// windows a single slot search accepts.
	MaxParticipantZones int
}

// DefaultPolicy returns the engine defaults: 30-minute step, 5-attendee
// highlight threshold, at most 8 participant timezones.
func DefaultPolicy() Policy {
	return Policy{
		SlotStep:              DefaultSlotStep,
		LargeMeetingThreshold: DefaultLargeMeetingThreshold,
		MaxParticipantZones:   DefaultMaxParticipantZones,
	}
}

func (p Policy) normalize() Policy {
	if p.SlotStep <= 0 {
		p.SlotStep = DefaultSlotStep
	}
	if p.SlotStep < minSlotStep {
		p.SlotStep = minSlotStep
	}
	if p.LargeMeetingThreshold <= 0 {
		p.LargeMeetingThreshold = DefaultLargeMeetingThreshold
	}
	if p.MaxParticipantZones <= 0 {
		p.MaxParticipantZones = DefaultMaxParticipantZones
	}
	return p
}
