package domain

import "time"

// EventType names an external pressure event that can hit a negotiation
// mid-session.
type EventType string

const (
	EventFundingCut    EventType = "funding_cut"
	EventSurpriseDonor EventType = "surprise_donor"
	EventScandal       EventType = "scandal"
	EventTimePressure  EventType = "time_pressure"
)

// Event records a pressure event and the round it landed in.
type Event struct {
	Type       EventType
	Round      int
	OccurredAt time.Time
}
