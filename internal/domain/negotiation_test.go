package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

func newNegotiation(t *testing.T) *domain.Negotiation {
	t.Helper()

	n, err := domain.NewNegotiation("test-id", 100000, 150000, 10, time.Now())
	if err != nil {
		t.Fatalf("NewNegotiation failed: %v", err)
	}
	return n
}

func TestNewNegotiationValidation(t *testing.T) {
	cases := []struct {
		name      string
		initial   float64
		requested float64
		maxRounds int
	}{
		{"zero initial funding", 0, 150000, 10},
		{"negative initial funding", -5, 150000, 10},
		{"requested equals initial", 100000, 100000, 10},
		{"requested below initial", 100000, 90000, 10},
		{"zero max rounds", 100000, 150000, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := domain.NewNegotiation("id", c.initial, c.requested, c.maxRounds, time.Now())
			if !errors.Is(err, domain.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNewNegotiationDefaults(t *testing.T) {
	n := newNegotiation(t)

	if n.FundingOffered != 100000 {
		t.Fatalf("funding offered should start at initial funding, got %v", n.FundingOffered)
	}
	if n.CurrentRound != 1 {
		t.Fatalf("current round should start at 1, got %d", n.CurrentRound)
	}
	if n.Status != domain.StatusOngoing {
		t.Fatalf("status should start ONGOING, got %s", n.Status)
	}
	if n.UrgencyLevel != domain.DefaultUrgencyLevel {
		t.Fatalf("unexpected urgency level %d", n.UrgencyLevel)
	}
	if n.MinAcceptable != 120000 {
		t.Fatalf("min acceptable should be 1.2x initial, got %v", n.MinAcceptable)
	}
}

func TestTransition(t *testing.T) {
	n := newNegotiation(t)

	if err := n.Transition(domain.StatusOngoing); err == nil {
		t.Fatal("transition to a non-terminal status should fail")
	}

	if err := n.Transition(domain.StatusAccepted); err != nil {
		t.Fatalf("transition to ACCEPTED failed: %v", err)
	}

	// Terminal status never reverses.
	if err := n.Transition(domain.StatusExhausted); err == nil {
		t.Fatal("transition out of a terminal status should fail")
	}
	if n.Status != domain.StatusAccepted {
		t.Fatalf("status changed after failed transition: %s", n.Status)
	}
}

func TestAdvanceRound(t *testing.T) {
	n := newNegotiation(t)

	for want := 2; want <= 5; want++ {
		n.AdvanceRound()
		if n.CurrentRound != want {
			t.Fatalf("expected round %d, got %d", want, n.CurrentRound)
		}
	}
}

func TestRoundsCompleted(t *testing.T) {
	n := newNegotiation(t)

	if n.RoundsCompleted() != 0 {
		t.Fatalf("expected 0 completed rounds, got %d", n.RoundsCompleted())
	}

	now := time.Now()
	n.History.AddOffer(domain.PartyCorporate, domain.NewOffer(100000, "offer", now))
	n.History.AddOffer(domain.PartyNonprofit, domain.NewOffer(150000, "counter", now))

	if n.RoundsCompleted() != 1 {
		t.Fatalf("expected 1 completed round, got %d", n.RoundsCompleted())
	}
}
