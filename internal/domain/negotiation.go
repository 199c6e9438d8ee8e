package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultMaxRounds bounds a session when the caller does not say otherwise.
	DefaultMaxRounds = 10

	// DefaultUrgencyLevel is the middle of the 1..10 urgency scale.
	DefaultUrgencyLevel = 5

	// minAcceptableFactor derives the nonprofit's internal floor from the
	// corporate party's opening position. The floor is never shown to the
	// corporate side.
	minAcceptableFactor = 1.2
)

var (
	// ErrInvalidConfiguration rejects session parameters that would leave the
	// negotiation in an inconsistent state.
	ErrInvalidConfiguration = errors.New("invalid negotiation configuration")

	// ErrNegotiationNotFound is returned by stores for unknown IDs.
	ErrNegotiationNotFound = errors.New("negotiation not found")
)

// Negotiation is the shared state of one funding negotiation session. The
// simulator owns all mutation; negotiators read it and keep their own private
// memory elsewhere.
type Negotiation struct {
	ID NegotiationID

	InitialFunding   float64
	FundingRequested float64
	// FundingOffered is the current corporate baseline. It starts at
	// InitialFunding and follows the latest corporate offer.
	FundingOffered float64

	CurrentRound int
	MaxRounds    int
	Status       Status

	// UrgencyLevel (1..10) drives how often the nonprofit reaches for
	// pressure tactics.
	UrgencyLevel int
	// MinAcceptable is the nonprofit's internal floor.
	MinAcceptable float64

	History *History

	CreatedAt time.Time
}

// NewNegotiation validates the session parameters and builds the initial
// state. Construction fails outright on inconsistent inputs; there is no
// partially valid session.
func NewNegotiation(id NegotiationID, initialFunding, requestedFunding float64, maxRounds int, now time.Time) (*Negotiation, error) {
	if initialFunding <= 0 {
		return nil, fmt.Errorf("%w: initial funding must be positive, got %v", ErrInvalidConfiguration, initialFunding)
	}
	if requestedFunding <= initialFunding {
		return nil, fmt.Errorf("%w: requested funding %v must exceed initial funding %v", ErrInvalidConfiguration, requestedFunding, initialFunding)
	}
	if maxRounds < 1 {
		return nil, fmt.Errorf("%w: max rounds must be at least 1, got %d", ErrInvalidConfiguration, maxRounds)
	}

	return &Negotiation{
		ID:               id,
		InitialFunding:   initialFunding,
		FundingRequested: requestedFunding,
		FundingOffered:   initialFunding,
		CurrentRound:     1,
		MaxRounds:        maxRounds,
		Status:           StatusOngoing,
		UrgencyLevel:     DefaultUrgencyLevel,
		MinAcceptable:    initialFunding * minAcceptableFactor,
		History:          NewHistory(),
		CreatedAt:        now,
	}, nil
}

// UpdateOffer moves the corporate baseline to the latest corporate offer.
func (n *Negotiation) UpdateOffer(amount float64) {
	n.FundingOffered = amount
}

// AdvanceRound moves to the next round. Rounds only ever move forward.
func (n *Negotiation) AdvanceRound() {
	n.CurrentRound++
}

// Transition moves the session into a terminal status. Only ONGOING sessions
// can transition, and a terminal status never reverses.
func (n *Negotiation) Transition(next Status) error {
	if n.Status != StatusOngoing {
		return fmt.Errorf("negotiation %s: cannot transition from %s to %s", n.ID, n.Status, next)
	}
	if !next.Terminal() {
		return fmt.Errorf("negotiation %s: %s is not a terminal status", n.ID, next)
	}

	n.Status = next
	return nil
}

// RoundsCompleted counts rounds in which both parties made an offer.
func (n *Negotiation) RoundsCompleted() int {
	return len(n.History.Offers(PartyCorporate))
}
