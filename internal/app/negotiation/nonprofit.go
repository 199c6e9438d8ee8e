package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

const (
	urgencyThreshold   = 7
	urgencyProbability = 0.4
	urgencyRaise       = 1.15

	competitiveRound       = 3
	competitiveProbability = 0.3
	competitiveRaise       = 1.10

	nonprofitWalkawayRound       = 5
	nonprofitWalkawayProbability = 0.2

	compromiseRound   = 7
	compromisePremium = 1.05

	// DefaultConcessionStep is how much of the original request the nonprofit
	// concedes per round once it starts compromising.
	DefaultConcessionStep = 0.05
)

// ChooseNonprofitTactic picks the nonprofit tactic for the current round.
// Same priority-order, first-match-wins evaluation as the corporate side.
func ChooseNonprofitTactic(n *domain.Negotiation, rng Rand) domain.NonprofitTactic {
	switch {
	case n.UrgencyLevel > urgencyThreshold && rng.Float64() < urgencyProbability:
		return domain.TacticUrgencyAppeal
	case n.CurrentRound > competitiveRound && rng.Float64() < competitiveProbability:
		return domain.TacticCompetitiveOffer
	case n.CurrentRound > nonprofitWalkawayRound && rng.Float64() < nonprofitWalkawayProbability:
		return domain.TacticWalkawayThreat
	case n.CurrentRound > compromiseRound:
		return domain.TacticGradualCompromise
	case n.CurrentRound == n.MaxRounds-1:
		return domain.TacticFinalAppeal
	default:
		return domain.TacticMaintainRequest
	}
}

// NonprofitNegotiator produces the nonprofit party's counter-offers. It
// remembers its own prior counter and a fixed per-round concession step.
type NonprofitNegotiator struct {
	rng       Rand
	messenger *Messenger
	now       func() time.Time

	concessionStep float64
	lastCounter    float64
}

func NewNonprofitNegotiator(rng Rand, messenger *Messenger) *NonprofitNegotiator {
	return &NonprofitNegotiator{
		rng:            rng,
		messenger:      messenger,
		now:            time.Now,
		concessionStep: DefaultConcessionStep,
	}
}

// MakeOffer computes the nonprofit counter for the current round. It reads
// the shared state but never mutates it.
func (p *NonprofitNegotiator) MakeOffer(ctx context.Context, n *domain.Negotiation) (domain.Offer, error) {
	tactic := ChooseNonprofitTactic(n, p.rng)

	amount := n.FundingRequested
	switch tactic {
	case domain.TacticUrgencyAppeal:
		amount = max(n.FundingOffered*urgencyRaise, n.MinAcceptable)
	case domain.TacticCompetitiveOffer:
		amount = max(n.FundingOffered*competitiveRaise, n.MinAcceptable)
	case domain.TacticWalkawayThreat, domain.TacticFinalAppeal:
		// Rhetoric only, no numeric movement.
		amount = n.FundingOffered
	case domain.TacticGradualCompromise:
		// The request decays over rounds but never drops below a 5% premium
		// over the corporate baseline.
		decayed := n.FundingRequested * (1 - p.concessionStep*float64(n.CurrentRound))
		amount = max(decayed, n.FundingOffered*compromisePremium)
	}
	if amount < 0 {
		amount = 0
	}
	p.lastCounter = amount

	message, err := p.messenger.Compose(ctx,
		nonprofitPrompt(tactic, amount, n),
		nonprofitFallback(tactic, amount),
		amount,
	)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("nonprofit %s message: %w", tactic, err)
	}

	return domain.NewOffer(amount, message, p.now()), nil
}
