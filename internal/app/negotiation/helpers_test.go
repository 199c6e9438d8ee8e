package negotiation_test

import (
	"math"
	"testing"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// scriptedRand replays a fixed sequence of draws; once exhausted it returns
// 0.99 so no probabilistic gate fires by accident.
type scriptedRand struct {
	draws []float64
	i     int
}

func (s *scriptedRand) Float64() float64 {
	if s.i >= len(s.draws) {
		return 0.99
	}
	v := s.draws[s.i]
	s.i++
	return v
}

// neverRand never passes a probabilistic gate.
type neverRand struct{}

func (neverRand) Float64() float64 { return 0.99 }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func testNegotiation(t *testing.T, initial, requested float64, maxRounds int) *domain.Negotiation {
	t.Helper()

	n, err := domain.NewNegotiation("test-negotiation", initial, requested, maxRounds, time.Now())
	if err != nil {
		t.Fatalf("NewNegotiation failed: %v", err)
	}
	return n
}
