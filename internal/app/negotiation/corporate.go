package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

const (
	baitProbability = 0.3
	baitShare       = 0.9
	baitRevision    = 0.75

	walkawayRound = 4
	walkawayShare = 0.8

	conditionalProbability = 0.2
	conditionalRaise       = 1.1

	initialReputation = 100
	baitPenalty       = 10
)

// ChooseCorporateTactic picks the corporate tactic for the current round.
// Conditions are evaluated in priority order; first match wins, and each
// probabilistic gate draws only when reached.
func ChooseCorporateTactic(n *domain.Negotiation, rng Rand) domain.CorporateTactic {
	switch {
	case n.CurrentRound < 3 && rng.Float64() < baitProbability:
		return domain.TacticBaitAndSwitch
	case n.CurrentRound > walkawayRound && n.FundingOffered < n.FundingRequested*walkawayShare:
		return domain.TacticWalkaway
	case rng.Float64() < conditionalProbability:
		return domain.TacticConditionalTerms
	default:
		return domain.TacticMaintain
	}
}

// CorporateNegotiator produces the corporate party's offers. Its only private
// memory is the remembered bait offer and a reputation score that drops each
// time the bait is revised downward.
type CorporateNegotiator struct {
	rng       Rand
	messenger *Messenger
	now       func() time.Time

	baitOffer  float64
	reputation int
}

func NewCorporateNegotiator(rng Rand, messenger *Messenger) *CorporateNegotiator {
	return &CorporateNegotiator{
		rng:        rng,
		messenger:  messenger,
		now:        time.Now,
		reputation: initialReputation,
	}
}

func (c *CorporateNegotiator) Reputation() int {
	return c.reputation
}

// MakeOffer computes the corporate offer for the current round. It reads the
// shared state but never mutates it.
func (c *CorporateNegotiator) MakeOffer(ctx context.Context, n *domain.Negotiation) (domain.Offer, error) {
	tactic := ChooseCorporateTactic(n, c.rng)

	var (
		amount      float64
		baitRevised bool
	)
	switch tactic {
	case domain.TacticBaitAndSwitch:
		if c.baitOffer == 0 {
			c.baitOffer = n.FundingRequested * baitShare
			amount = c.baitOffer
		} else {
			// Permanent downward revision of the remembered bait.
			amount = c.baitOffer * baitRevision
			baitRevised = true
			c.reputation -= baitPenalty
		}
	case domain.TacticConditionalTerms:
		amount = n.FundingOffered * conditionalRaise
	default: // walkaway and maintain both repeat the current baseline
		amount = n.FundingOffered
	}

	message, err := c.messenger.Compose(ctx,
		corporatePrompt(tactic, amount, n),
		corporateFallback(tactic, amount, baitRevised),
		amount,
	)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("corporate %s message: %w", tactic, err)
	}

	return domain.NewOffer(amount, message, c.now()), nil
}
