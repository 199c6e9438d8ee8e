package negotiation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fluentnsunshine/funding-sim-v2/internal/app/negotiation"
	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

func newSimulator(n *domain.Negotiation, observer negotiation.RoundObserver) *negotiation.Simulator {
	messenger := negotiation.NewMessenger(nil)
	return negotiation.NewSimulator(n,
		negotiation.NewCorporateNegotiator(neverRand{}, messenger),
		negotiation.NewNonprofitNegotiator(neverRand{}, messenger),
		negotiation.NewEventInjector(neverRand{}, 0),
		observer,
	)
}

func TestSimulatorExhaustsAllRounds(t *testing.T) {
	n := testNegotiation(t, 100000, 150000, 10)

	var rounds []negotiation.RoundResult
	sim := newSimulator(n, func(rr negotiation.RoundResult) {
		rounds = append(rounds, rr)
	})

	report, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// With no probabilistic gates firing the corporate side never moves and
	// the nonprofit never comes down far enough to close.
	if report.Status != domain.StatusExhausted {
		t.Fatalf("expected EXHAUSTED, got %s", report.Status)
	}
	if report.RoundsCompleted != 10 {
		t.Fatalf("expected 10 completed rounds, got %d", report.RoundsCompleted)
	}
	if !approx(report.FinalOffer, 100000) {
		t.Fatalf("expected final offer 100000, got %v", report.FinalOffer)
	}
	if report.ReputationScore != 100 {
		t.Fatalf("expected untouched reputation, got %d", report.ReputationScore)
	}
	if report.EventCount != 0 {
		t.Fatalf("expected no events, got %d", report.EventCount)
	}
	if n.CurrentRound != 11 {
		t.Fatalf("expected current round 11 after exhaustion, got %d", n.CurrentRound)
	}

	if len(rounds) != 10 {
		t.Fatalf("observer saw %d rounds, expected 10", len(rounds))
	}
	for i, rr := range rounds {
		if rr.Round != i+1 {
			t.Fatalf("rounds out of order: index %d has round %d", i, rr.Round)
		}
		if rr.Accepted {
			t.Fatalf("round %d should not be accepted", rr.Round)
		}
	}

	if got := len(n.History.Offers(domain.PartyCorporate)); got != 10 {
		t.Fatalf("expected 10 corporate offers in history, got %d", got)
	}
	if got := len(n.History.Offers(domain.PartyNonprofit)); got != 10 {
		t.Fatalf("expected 10 nonprofit counters in history, got %d", got)
	}
}

func TestSimulatorAcceptsOnFinalAppeal(t *testing.T) {
	n := testNegotiation(t, 100000, 150000, 3)

	var rounds []negotiation.RoundResult
	sim := newSimulator(n, func(rr negotiation.RoundResult) {
		rounds = append(rounds, rr)
	})

	report, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// In round 2 the nonprofit makes its final appeal at the corporate
	// position, so the offers meet and the deal closes.
	if report.Status != domain.StatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", report.Status)
	}
	if report.RoundsCompleted != 2 {
		t.Fatalf("expected 2 completed rounds, got %d", report.RoundsCompleted)
	}
	if !approx(report.FinalOffer, 100000) {
		t.Fatalf("expected final offer 100000, got %v", report.FinalOffer)
	}
	if n.CurrentRound != 2 {
		t.Fatalf("acceptance should not advance the round, got %d", n.CurrentRound)
	}

	if len(rounds) != 2 {
		t.Fatalf("observer saw %d rounds, expected 2", len(rounds))
	}
	last := rounds[len(rounds)-1]
	if !last.Accepted {
		t.Fatal("last observed round should be the accepted one")
	}
	if last.Corporate.Amount() < last.Nonprofit.Amount() {
		t.Fatalf("accepted round violates the acceptance rule: %v < %v",
			last.Corporate.Amount(), last.Nonprofit.Amount())
	}
}

func TestSimulatorPropagatesOfferFailure(t *testing.T) {
	n := testNegotiation(t, 100000, 150000, 10)

	genErr := errors.New("backend unavailable")
	messenger := negotiation.NewMessenger(failingGenerator{err: genErr})
	sim := negotiation.NewSimulator(n,
		negotiation.NewCorporateNegotiator(neverRand{}, messenger),
		negotiation.NewNonprofitNegotiator(neverRand{}, messenger),
		negotiation.NewEventInjector(neverRand{}, 0),
		nil,
	)

	_, err := sim.Run(context.Background())
	if !errors.Is(err, genErr) {
		t.Fatalf("expected the generator error, got %v", err)
	}
	if n.Status != domain.StatusOngoing {
		t.Fatalf("a failed run must not reach a terminal status, got %s", n.Status)
	}
}

type failingGenerator struct{ err error }

func (f failingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", f.err
}
