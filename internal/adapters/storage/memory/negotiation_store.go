package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

type record struct {
	negotiation *domain.Negotiation
	report      domain.Report
}

// NegotiationStore is a simple in-memory transcript store. It is NOT
// persistent and is only suitable for development / local mode.
type NegotiationStore struct {
	mu      sync.RWMutex
	records map[domain.NegotiationID]record
	order   []domain.NegotiationID // insertion order, oldest first
}

func NewNegotiationStore() *NegotiationStore {
	return &NegotiationStore{
		records: make(map[domain.NegotiationID]record),
	}
}

func (s *NegotiationStore) SaveNegotiation(ctx context.Context, n *domain.Negotiation, report domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[n.ID]; exists {
		return errors.New("negotiation already exists")
	}

	s.records[n.ID] = record{negotiation: n, report: report}
	s.order = append(s.order, n.ID)
	return nil
}

func (s *NegotiationStore) GetNegotiation(ctx context.Context, id domain.NegotiationID) (*domain.Negotiation, domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.Report{}, domain.ErrNegotiationNotFound
	}

	return rec.negotiation, rec.report, nil
}

func (s *NegotiationStore) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Report, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.records[s.order[i]].report)
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}
