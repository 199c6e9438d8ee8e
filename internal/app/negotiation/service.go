package negotiation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
	"github.com/fluentnsunshine/funding-sim-v2/internal/observability"
)

// Service runs negotiation sessions end to end: validate inputs, build the
// state and both negotiators, drive the simulator, persist the transcript.
type Service struct {
	gen   domain.TextGenerator
	store domain.NegotiationStore
	now   func() time.Time
}

// NewService builds a Service. store may be nil for one-shot runs that keep
// no transcript.
func NewService(gen domain.TextGenerator, store domain.NegotiationStore) *Service {
	return &Service{
		gen:   gen,
		store: store,
		now:   time.Now,
	}
}

type RunInput struct {
	InitialFunding   float64
	RequestedFunding float64
	MaxRounds        int // 0 = default
	UrgencyLevel     int // 0 = default
	Seed             int64
	EventProbability float64
	Observer         RoundObserver
}

type RunOutput struct {
	Negotiation *domain.Negotiation
	Report      domain.Report
}

// Run executes one negotiation session to completion.
func (s *Service) Run(ctx context.Context, in RunInput) (*RunOutput, error) {
	maxRounds := in.MaxRounds
	if maxRounds == 0 {
		maxRounds = domain.DefaultMaxRounds
	}

	now := s.now()
	n, err := domain.NewNegotiation(
		domain.NegotiationID(uuid.NewString()),
		in.InitialFunding,
		in.RequestedFunding,
		maxRounds,
		now,
	)
	if err != nil {
		return nil, err
	}

	if in.UrgencyLevel != 0 {
		if in.UrgencyLevel < 1 || in.UrgencyLevel > 10 {
			return nil, fmt.Errorf("%w: urgency level must be between 1 and 10, got %d",
				domain.ErrInvalidConfiguration, in.UrgencyLevel)
		}
		n.UrgencyLevel = in.UrgencyLevel
	}

	ctx = observability.WithNegotiationID(ctx, string(n.ID))
	log := observability.LoggerFromContext(ctx)

	seed := in.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	messenger := NewMessenger(s.gen)
	sim := NewSimulator(n,
		NewCorporateNegotiator(rng, messenger),
		NewNonprofitNegotiator(rng, messenger),
		NewEventInjector(rng, in.EventProbability),
		in.Observer,
	)

	report, err := sim.Run(ctx)
	if err != nil {
		log.Error("negotiation run failed", "error", err)
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveNegotiation(ctx, n, report); err != nil {
			log.Error("failed to save negotiation transcript", "error", err)
			return nil, err
		}
	}

	return &RunOutput{
		Negotiation: n,
		Report:      report,
	}, nil
}

// GetNegotiation loads a stored transcript.
func (s *Service) GetNegotiation(ctx context.Context, id domain.NegotiationID) (*domain.Negotiation, domain.Report, error) {
	if s.store == nil {
		return nil, domain.Report{}, domain.ErrNegotiationNotFound
	}
	return s.store.GetNegotiation(ctx, id)
}

// ListReports returns stored session summaries, newest first.
func (s *Service) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListReports(ctx, limit)
}
