package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// Store persists negotiation transcripts in Firestore: one document per
// negotiation with "offers" and "events" subcollections.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) negotiationsCol() *firestore.CollectionRef {
	return s.client.Collection("negotiations")
}

func (s *Store) negotiationDoc(id domain.NegotiationID) *firestore.DocumentRef {
	return s.negotiationsCol().Doc(string(id))
}

func (s *Store) offersCol(id domain.NegotiationID) *firestore.CollectionRef {
	return s.negotiationDoc(id).Collection("offers")
}

func (s *Store) eventsCol(id domain.NegotiationID) *firestore.CollectionRef {
	return s.negotiationDoc(id).Collection("events")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type negotiationDoc struct {
	Status           string    `firestore:"status"`
	InitialFunding   float64   `firestore:"initial_funding"`
	FundingRequested float64   `firestore:"funding_requested"`
	FundingOffered   float64   `firestore:"funding_offered"`
	CurrentRound     int       `firestore:"current_round"`
	MaxRounds        int       `firestore:"max_rounds"`
	UrgencyLevel     int       `firestore:"urgency_level"`
	MinAcceptable    float64   `firestore:"min_acceptable"`
	RoundsCompleted  int       `firestore:"rounds_completed"`
	ReputationScore  int       `firestore:"reputation_score"`
	EventCount       int       `firestore:"event_count"`
	CreatedAt        time.Time `firestore:"created_at"`
	CompletedAt      time.Time `firestore:"completed_at"`
}

type offerDoc struct {
	Party     string    `firestore:"party"`
	Seq       int       `firestore:"seq"`
	Amount    float64   `firestore:"amount"`
	Message   string    `firestore:"message"`
	CreatedAt time.Time `firestore:"created_at"`
}

type eventDoc struct {
	Type       string    `firestore:"type"`
	Round      int       `firestore:"round"`
	OccurredAt time.Time `firestore:"occurred_at"`
}

// ─────────────────────────────────────────
// NegotiationStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveNegotiation(ctx context.Context, n *domain.Negotiation, report domain.Report) error {
	doc := negotiationDoc{
		Status:           string(n.Status),
		InitialFunding:   n.InitialFunding,
		FundingRequested: n.FundingRequested,
		FundingOffered:   n.FundingOffered,
		CurrentRound:     n.CurrentRound,
		MaxRounds:        n.MaxRounds,
		UrgencyLevel:     n.UrgencyLevel,
		MinAcceptable:    n.MinAcceptable,
		RoundsCompleted:  report.RoundsCompleted,
		ReputationScore:  report.ReputationScore,
		EventCount:       report.EventCount,
		CreatedAt:        n.CreatedAt,
		CompletedAt:      report.CompletedAt,
	}

	if _, err := s.negotiationDoc(n.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveNegotiation: %w", err)
	}

	for _, party := range []domain.Party{domain.PartyCorporate, domain.PartyNonprofit} {
		for i, offer := range n.History.Offers(party) {
			od := offerDoc{
				Party:     string(party),
				Seq:       i,
				Amount:    offer.Amount(),
				Message:   offer.Message(),
				CreatedAt: offer.CreatedAt(),
			}
			ref := s.offersCol(n.ID).Doc(fmt.Sprintf("%s-%03d", party, i))
			if _, err := ref.Set(ctx, od); err != nil {
				return fmt.Errorf("firestore SaveNegotiation offer: %w", err)
			}
		}
	}

	for i, event := range n.History.Events() {
		ed := eventDoc{
			Type:       string(event.Type),
			Round:      event.Round,
			OccurredAt: event.OccurredAt,
		}
		if _, err := s.eventsCol(n.ID).Doc(fmt.Sprintf("%03d", i)).Set(ctx, ed); err != nil {
			return fmt.Errorf("firestore SaveNegotiation event: %w", err)
		}
	}

	return nil
}

func (s *Store) GetNegotiation(ctx context.Context, id domain.NegotiationID) (*domain.Negotiation, domain.Report, error) {
	snap, err := s.negotiationDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.Report{}, domain.ErrNegotiationNotFound
		}
		return nil, domain.Report{}, fmt.Errorf("firestore GetNegotiation: %w", err)
	}

	var doc negotiationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, domain.Report{}, fmt.Errorf("firestore GetNegotiation decode: %w", err)
	}

	n := &domain.Negotiation{
		ID:               id,
		InitialFunding:   doc.InitialFunding,
		FundingRequested: doc.FundingRequested,
		FundingOffered:   doc.FundingOffered,
		CurrentRound:     doc.CurrentRound,
		MaxRounds:        doc.MaxRounds,
		Status:           domain.Status(doc.Status),
		UrgencyLevel:     doc.UrgencyLevel,
		MinAcceptable:    doc.MinAcceptable,
		History:          domain.NewHistory(),
		CreatedAt:        doc.CreatedAt,
	}

	iter := s.offersCol(id).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()
	for {
		osnap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, domain.Report{}, fmt.Errorf("firestore GetNegotiation offers: %w", err)
		}

		var od offerDoc
		if err := osnap.DataTo(&od); err != nil {
			return nil, domain.Report{}, fmt.Errorf("decode offerDoc: %w", err)
		}
		n.History.AddOffer(domain.Party(od.Party), domain.NewOffer(od.Amount, od.Message, od.CreatedAt))
	}

	eiter := s.eventsCol(id).OrderBy("occurred_at", firestore.Asc).Documents(ctx)
	defer eiter.Stop()
	for {
		esnap, err := eiter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, domain.Report{}, fmt.Errorf("firestore GetNegotiation events: %w", err)
		}

		var ed eventDoc
		if err := esnap.DataTo(&ed); err != nil {
			return nil, domain.Report{}, fmt.Errorf("decode eventDoc: %w", err)
		}
		n.History.AddEvent(domain.Event{
			Type:       domain.EventType(ed.Type),
			Round:      ed.Round,
			OccurredAt: ed.OccurredAt,
		})
	}

	return n, reportFromDoc(id, doc), nil
}

func (s *Store) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	q := s.negotiationsCol().OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.Report
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListReports: %w", err)
		}

		var doc negotiationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode negotiationDoc: %w", err)
		}

		out = append(out, reportFromDoc(domain.NegotiationID(snap.Ref.ID), doc))
	}
	return out, nil
}

func reportFromDoc(id domain.NegotiationID, doc negotiationDoc) domain.Report {
	return domain.Report{
		NegotiationID:    id,
		Status:           domain.Status(doc.Status),
		InitialFunding:   doc.InitialFunding,
		FinalOffer:       doc.FundingOffered,
		FundingRequested: doc.FundingRequested,
		RoundsCompleted:  doc.RoundsCompleted,
		ReputationScore:  doc.ReputationScore,
		EventCount:       doc.EventCount,
		CreatedAt:        doc.CreatedAt,
		CompletedAt:      doc.CompletedAt,
	}
}
