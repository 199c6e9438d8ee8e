package domain_test

import (
	"testing"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

func TestOfferAccessors(t *testing.T) {
	now := time.Now()
	offer := domain.NewOffer(135000, "We are offering a generous $135,000.00!", now)

	// Reads never change the value.
	for i := 0; i < 3; i++ {
		if got := offer.Amount(); got != 135000 {
			t.Fatalf("expected amount 135000, got %v", got)
		}
		if got := offer.Message(); got != "We are offering a generous $135,000.00!" {
			t.Fatalf("unexpected message: %q", got)
		}
		if !offer.CreatedAt().Equal(now) {
			t.Fatalf("unexpected created at: %v", offer.CreatedAt())
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{950.5, "$950.50"},
		{100000, "$100,000.00"},
		{1234567.89, "$1,234,567.89"},
		{115500, "$115,500.00"},
	}

	for _, c := range cases {
		if got := domain.FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		text string
		want float64
		ok   bool
	}{
		{"We are offering a generous $135,000.00!", 135000, true},
		{"we can do 90,000 this quarter", 90000, true},
		{"no figures here", 0, false},
		{"$1,234.56 and later $99", 1234.56, true},
	}

	for _, c := range cases {
		got, ok := domain.ParseAmount(c.text)
		if ok != c.ok {
			t.Errorf("ParseAmount(%q) ok = %v, want %v", c.text, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestHistoryOrdering(t *testing.T) {
	h := domain.NewHistory()
	now := time.Now()

	if _, ok := h.LastOffer(domain.PartyCorporate); ok {
		t.Fatal("expected no last offer on empty history")
	}

	h.AddOffer(domain.PartyCorporate, domain.NewOffer(100000, "round 1", now))
	h.AddOffer(domain.PartyNonprofit, domain.NewOffer(150000, "round 1", now))
	h.AddOffer(domain.PartyCorporate, domain.NewOffer(110000, "round 2", now))

	corporate := h.Offers(domain.PartyCorporate)
	if len(corporate) != 2 {
		t.Fatalf("expected 2 corporate offers, got %d", len(corporate))
	}
	if corporate[0].Amount() != 100000 || corporate[1].Amount() != 110000 {
		t.Fatalf("corporate offers out of order: %v, %v", corporate[0].Amount(), corporate[1].Amount())
	}

	last, ok := h.LastOffer(domain.PartyCorporate)
	if !ok || last.Amount() != 110000 {
		t.Fatalf("expected last corporate offer 110000, got %v (ok=%v)", last.Amount(), ok)
	}

	nonprofit := h.Offers(domain.PartyNonprofit)
	if len(nonprofit) != 1 || nonprofit[0].Amount() != 150000 {
		t.Fatalf("unexpected nonprofit offers: %v", nonprofit)
	}
}
