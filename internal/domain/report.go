package domain

import "time"

// Report is the final summary of a completed session. Exactly one report is
// produced per session that runs to a terminal status; a failed session
// produces none.
type Report struct {
	NegotiationID NegotiationID
	Status        Status

	InitialFunding   float64
	FinalOffer       float64
	FundingRequested float64

	RoundsCompleted int
	ReputationScore int
	EventCount      int

	CreatedAt   time.Time
	CompletedAt time.Time
}
