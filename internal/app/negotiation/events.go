package negotiation

import (
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

const (
	fundingCutFactor = 0.9
	scandalFactor    = 0.95
	urgencyShift     = 2
	urgencyFloor     = 1
	urgencyCap       = 10
)

// EventInjector rolls once per round and occasionally lands a pressure event
// on the negotiation. A nil injector or zero probability disables events.
type EventInjector struct {
	rng         Rand
	probability float64
	now         func() time.Time
}

func NewEventInjector(rng Rand, probability float64) *EventInjector {
	return &EventInjector{
		rng:         rng,
		probability: probability,
		now:         time.Now,
	}
}

// MaybeFire applies at most one event and records it in the history.
// Returns nil when nothing happened.
func (e *EventInjector) MaybeFire(n *domain.Negotiation) *domain.Event {
	if e == nil || e.probability <= 0 {
		return nil
	}
	if e.rng.Float64() >= e.probability {
		return nil
	}

	var eventType domain.EventType
	switch pick := e.rng.Float64(); {
	case pick < 0.25:
		eventType = domain.EventFundingCut
	case pick < 0.5:
		eventType = domain.EventSurpriseDonor
	case pick < 0.75:
		eventType = domain.EventScandal
	default:
		eventType = domain.EventTimePressure
	}

	switch eventType {
	case domain.EventFundingCut:
		n.UpdateOffer(n.FundingOffered * fundingCutFactor)
	case domain.EventSurpriseDonor:
		n.UrgencyLevel -= urgencyShift
		if n.UrgencyLevel < urgencyFloor {
			n.UrgencyLevel = urgencyFloor
		}
	case domain.EventScandal:
		n.MinAcceptable *= scandalFactor
	case domain.EventTimePressure:
		n.UrgencyLevel += urgencyShift
		if n.UrgencyLevel > urgencyCap {
			n.UrgencyLevel = urgencyCap
		}
	}

	event := domain.Event{
		Type:       eventType,
		Round:      n.CurrentRound,
		OccurredAt: e.now(),
	}
	n.History.AddEvent(event)
	return &event
}
