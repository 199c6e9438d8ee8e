package domain

import "time"

type NegotiationID string

type Party string

const (
	PartyCorporate Party = "corporate"
	PartyNonprofit Party = "nonprofit"
)

// Status of a negotiation session.
type Status string

const (
	StatusOngoing   Status = "ONGOING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusExhausted Status = "EXHAUSTED"
)

// Terminal reports whether the status allows no further rounds.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusExhausted
}

type Timestamp = time.Time
