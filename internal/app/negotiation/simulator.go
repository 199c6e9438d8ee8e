package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
	"github.com/fluentnsunshine/funding-sim-v2/internal/observability"
)

// RoundResult is what one completed round looked like, handed to the
// observer for presentation.
type RoundResult struct {
	Round     int
	Corporate domain.Offer
	Nonprofit domain.Offer
	Event     *domain.Event
	Accepted  bool
}

// RoundObserver receives each completed round, e.g. for console output.
type RoundObserver func(RoundResult)

// Simulator drives the round loop: corporate offer, nonprofit counter,
// acceptance check, round advance, until the session reaches a terminal
// status.
type Simulator struct {
	negotiation *domain.Negotiation
	corporate   *CorporateNegotiator
	nonprofit   *NonprofitNegotiator
	events      *EventInjector
	observer    RoundObserver
	now         func() time.Time
}

func NewSimulator(
	n *domain.Negotiation,
	corporate *CorporateNegotiator,
	nonprofit *NonprofitNegotiator,
	events *EventInjector,
	observer RoundObserver,
) *Simulator {
	return &Simulator{
		negotiation: n,
		corporate:   corporate,
		nonprofit:   nonprofit,
		events:      events,
		observer:    observer,
		now:         time.Now,
	}
}

// Run executes the negotiation to completion and returns the final report.
// On a failed round (e.g. rate limit exhaustion) it returns the error and no
// report is produced.
func (s *Simulator) Run(ctx context.Context) (domain.Report, error) {
	n := s.negotiation

	log := observability.LoggerFromContext(ctx)
	log.Info("negotiation started",
		"initial_funding", n.InitialFunding,
		"funding_requested", n.FundingRequested,
		"max_rounds", n.MaxRounds,
		"urgency_level", n.UrgencyLevel,
	)

	for n.Status == domain.StatusOngoing && n.CurrentRound <= n.MaxRounds {
		round := n.CurrentRound

		event := s.events.MaybeFire(n)
		if event != nil {
			log.Info("pressure event", "round", round, "event", string(event.Type))
		}

		corporateOffer, err := s.corporate.MakeOffer(ctx, n)
		if err != nil {
			log.Error("corporate offer failed", "round", round, "error", err)
			return domain.Report{}, fmt.Errorf("round %d: %w", round, err)
		}
		n.History.AddOffer(domain.PartyCorporate, corporateOffer)
		// The counter always answers the latest corporate position.
		n.UpdateOffer(corporateOffer.Amount())

		nonprofitOffer, err := s.nonprofit.MakeOffer(ctx, n)
		if err != nil {
			log.Error("nonprofit counter failed", "round", round, "error", err)
			return domain.Report{}, fmt.Errorf("round %d: %w", round, err)
		}
		n.History.AddOffer(domain.PartyNonprofit, nonprofitOffer)

		accepted := corporateOffer.Amount() >= nonprofitOffer.Amount()
		if accepted {
			if err := n.Transition(domain.StatusAccepted); err != nil {
				return domain.Report{}, err
			}
		} else {
			n.AdvanceRound()
			if n.CurrentRound > n.MaxRounds {
				if err := n.Transition(domain.StatusExhausted); err != nil {
					return domain.Report{}, err
				}
			}
		}

		log.Info("round completed",
			"round", round,
			"corporate_offer", corporateOffer.Amount(),
			"nonprofit_counter", nonprofitOffer.Amount(),
			"accepted", accepted,
		)

		if s.observer != nil {
			s.observer(RoundResult{
				Round:     round,
				Corporate: corporateOffer,
				Nonprofit: nonprofitOffer,
				Event:     event,
				Accepted:  accepted,
			})
		}
	}

	report := domain.Report{
		NegotiationID:    n.ID,
		Status:           n.Status,
		InitialFunding:   n.InitialFunding,
		FinalOffer:       n.FundingOffered,
		FundingRequested: n.FundingRequested,
		RoundsCompleted:  n.RoundsCompleted(),
		ReputationScore:  s.corporate.Reputation(),
		EventCount:       len(n.History.Events()),
		CreatedAt:        n.CreatedAt,
		CompletedAt:      s.now(),
	}

	log.Info("negotiation finished",
		"status", string(n.Status),
		"rounds_completed", report.RoundsCompleted,
		"final_offer", report.FinalOffer,
	)

	return report, nil
}
