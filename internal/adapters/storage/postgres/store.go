package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// Store persists negotiation transcripts in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// NewStoreWithPool wraps an existing pool, e.g. in tests. It still applies
// migrations.
func NewStoreWithPool(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS negotiations (
			id                TEXT PRIMARY KEY,
			status            TEXT NOT NULL,
			initial_funding   DOUBLE PRECISION NOT NULL,
			funding_requested DOUBLE PRECISION NOT NULL,
			funding_offered   DOUBLE PRECISION NOT NULL,
			current_round     INT NOT NULL,
			max_rounds        INT NOT NULL,
			urgency_level     INT NOT NULL,
			min_acceptable    DOUBLE PRECISION NOT NULL,
			rounds_completed  INT NOT NULL,
			reputation_score  INT NOT NULL,
			event_count       INT NOT NULL,
			created_at        TIMESTAMPTZ NOT NULL,
			completed_at      TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negotiation_offers (
			id             BIGSERIAL PRIMARY KEY,
			negotiation_id TEXT NOT NULL REFERENCES negotiations(id),
			party          TEXT NOT NULL,
			seq            INT NOT NULL,
			amount         DOUBLE PRECISION NOT NULL,
			message        TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negotiation_events (
			id             BIGSERIAL PRIMARY KEY,
			negotiation_id TEXT NOT NULL REFERENCES negotiations(id),
			type           TEXT NOT NULL,
			round          INT NOT NULL,
			occurred_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_negotiation_offers_negotiation_id
			ON negotiation_offers(negotiation_id);
		CREATE INDEX IF NOT EXISTS idx_negotiation_events_negotiation_id
			ON negotiation_events(negotiation_id);
	`)
	if err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (s *Store) SaveNegotiation(ctx context.Context, n *domain.Negotiation, report domain.Report) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres SaveNegotiation begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO negotiations (
			id, status, initial_funding, funding_requested, funding_offered,
			current_round, max_rounds, urgency_level, min_acceptable,
			rounds_completed, reputation_score, event_count, created_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		string(n.ID), string(n.Status), n.InitialFunding, n.FundingRequested, n.FundingOffered,
		n.CurrentRound, n.MaxRounds, n.UrgencyLevel, n.MinAcceptable,
		report.RoundsCompleted, report.ReputationScore, report.EventCount, n.CreatedAt, report.CompletedAt,
	); err != nil {
		return fmt.Errorf("postgres SaveNegotiation insert: %w", err)
	}

	for _, party := range []domain.Party{domain.PartyCorporate, domain.PartyNonprofit} {
		for i, offer := range n.History.Offers(party) {
			if _, err := tx.Exec(ctx, `
				INSERT INTO negotiation_offers (negotiation_id, party, seq, amount, message, created_at)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, string(n.ID), string(party), i, offer.Amount(), offer.Message(), offer.CreatedAt()); err != nil {
				return fmt.Errorf("postgres SaveNegotiation offer: %w", err)
			}
		}
	}

	for _, event := range n.History.Events() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO negotiation_events (negotiation_id, type, round, occurred_at)
			VALUES ($1,$2,$3,$4)
		`, string(n.ID), string(event.Type), event.Round, event.OccurredAt); err != nil {
			return fmt.Errorf("postgres SaveNegotiation event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres SaveNegotiation commit: %w", err)
	}
	return nil
}

func (s *Store) GetNegotiation(ctx context.Context, id domain.NegotiationID) (*domain.Negotiation, domain.Report, error) {
	n := &domain.Negotiation{
		ID:      id,
		History: domain.NewHistory(),
	}
	report := domain.Report{NegotiationID: id}

	var negotiationStatus string
	err := s.pool.QueryRow(ctx, `
		SELECT status, initial_funding, funding_requested, funding_offered,
		       current_round, max_rounds, urgency_level, min_acceptable,
		       rounds_completed, reputation_score, event_count, created_at, completed_at
		FROM negotiations WHERE id = $1
	`, string(id)).Scan(
		&negotiationStatus, &n.InitialFunding, &n.FundingRequested, &n.FundingOffered,
		&n.CurrentRound, &n.MaxRounds, &n.UrgencyLevel, &n.MinAcceptable,
		&report.RoundsCompleted, &report.ReputationScore, &report.EventCount, &n.CreatedAt, &report.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Report{}, domain.ErrNegotiationNotFound
		}
		return nil, domain.Report{}, fmt.Errorf("postgres GetNegotiation: %w", err)
	}
	n.Status = domain.Status(negotiationStatus)
	report.Status = n.Status
	report.InitialFunding = n.InitialFunding
	report.FinalOffer = n.FundingOffered
	report.FundingRequested = n.FundingRequested
	report.CreatedAt = n.CreatedAt

	rows, err := s.pool.Query(ctx, `
		SELECT party, amount, message, created_at
		FROM negotiation_offers
		WHERE negotiation_id = $1
		ORDER BY seq, party
	`, string(id))
	if err != nil {
		return nil, domain.Report{}, fmt.Errorf("postgres GetNegotiation offers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			party, message string
			amount         float64
			createdAt      domain.Timestamp
		)
		if err := rows.Scan(&party, &amount, &message, &createdAt); err != nil {
			return nil, domain.Report{}, fmt.Errorf("postgres scan offer: %w", err)
		}
		n.History.AddOffer(domain.Party(party), domain.NewOffer(amount, message, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Report{}, fmt.Errorf("postgres GetNegotiation offers: %w", err)
	}

	erows, err := s.pool.Query(ctx, `
		SELECT type, round, occurred_at
		FROM negotiation_events
		WHERE negotiation_id = $1
		ORDER BY id
	`, string(id))
	if err != nil {
		return nil, domain.Report{}, fmt.Errorf("postgres GetNegotiation events: %w", err)
	}
	defer erows.Close()

	for erows.Next() {
		var event domain.Event
		var eventType string
		if err := erows.Scan(&eventType, &event.Round, &event.OccurredAt); err != nil {
			return nil, domain.Report{}, fmt.Errorf("postgres scan event: %w", err)
		}
		event.Type = domain.EventType(eventType)
		n.History.AddEvent(event)
	}
	if err := erows.Err(); err != nil {
		return nil, domain.Report{}, fmt.Errorf("postgres GetNegotiation events: %w", err)
	}

	return n, report, nil
}

func (s *Store) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	query := `
		SELECT id, status, initial_funding, funding_requested, funding_offered,
		       rounds_completed, reputation_score, event_count, created_at, completed_at
		FROM negotiations
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres ListReports: %w", err)
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		var r domain.Report
		var id, reportStatus string
		if err := rows.Scan(&id, &reportStatus, &r.InitialFunding, &r.FundingRequested, &r.FinalOffer,
			&r.RoundsCompleted, &r.ReputationScore, &r.EventCount, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("postgres scan report: %w", err)
		}
		r.NegotiationID = domain.NegotiationID(id)
		r.Status = domain.Status(reportStatus)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres ListReports: %w", err)
	}

	return out, nil
}
