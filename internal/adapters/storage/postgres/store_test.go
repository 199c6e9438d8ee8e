package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/storage/postgres"
	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// startStore boots a throwaway Postgres 16 container and returns a migrated
// store. Requires a working Docker daemon; skipped with -short or when no
// container can be started.
func startStore(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	// testcontainers panics (rather than returning an error) when no Docker
	// host can be found at all; fold that into the documented skip path.
	pgC, err := func() (c *tcpostgres.PostgresContainer, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("docker host not available: %v", r)
			}
		}()
		return tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("fundsim"),
			tcpostgres.WithUsername("fundsim"),
			tcpostgres.WithPassword("fundsim"),
			tcpostgres.BasicWaitStrategies(),
		)
	}()
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	store, err := postgres.NewStoreWithPool(ctx, pool)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return store
}

func sampleNegotiation(t *testing.T, id string) (*domain.Negotiation, domain.Report) {
	t.Helper()

	created := time.Now().UTC().Truncate(time.Microsecond)
	n, err := domain.NewNegotiation(domain.NegotiationID(id), 100000, 150000, 10, created)
	if err != nil {
		t.Fatalf("NewNegotiation failed: %v", err)
	}
	n.Status = domain.StatusAccepted
	n.FundingOffered = 110000
	n.CurrentRound = 4

	n.History.AddOffer(domain.PartyCorporate, domain.NewOffer(100000, "first offer", created))
	n.History.AddOffer(domain.PartyNonprofit, domain.NewOffer(150000, "first counter", created))
	n.History.AddOffer(domain.PartyCorporate, domain.NewOffer(110000, "second offer", created))
	n.History.AddOffer(domain.PartyNonprofit, domain.NewOffer(110000, "final appeal", created))
	n.History.AddEvent(domain.Event{Type: domain.EventScandal, Round: 2, OccurredAt: created})

	report := domain.Report{
		NegotiationID:    n.ID,
		Status:           n.Status,
		InitialFunding:   n.InitialFunding,
		FinalOffer:       n.FundingOffered,
		FundingRequested: n.FundingRequested,
		RoundsCompleted:  2,
		ReputationScore:  100,
		EventCount:       1,
		CreatedAt:        created,
		CompletedAt:      created,
	}
	return n, report
}

func TestPostgresRoundTrip(t *testing.T) {
	store := startStore(t)
	ctx := context.Background()

	n, report := sampleNegotiation(t, "pg-neg-1")
	if err := store.SaveNegotiation(ctx, n, report); err != nil {
		t.Fatalf("SaveNegotiation failed: %v", err)
	}

	got, gotReport, err := store.GetNegotiation(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNegotiation failed: %v", err)
	}

	if got.Status != domain.StatusAccepted {
		t.Errorf("status lost on round trip: %s", got.Status)
	}
	if got.FundingOffered != 110000 {
		t.Errorf("funding offered lost on round trip: %v", got.FundingOffered)
	}
	if gotReport.RoundsCompleted != 2 {
		t.Errorf("rounds completed lost on round trip: %d", gotReport.RoundsCompleted)
	}
	if gotReport.FinalOffer != 110000 {
		t.Errorf("final offer lost on round trip: %v", gotReport.FinalOffer)
	}

	corporate := got.History.Offers(domain.PartyCorporate)
	if len(corporate) != 2 {
		t.Fatalf("expected 2 corporate offers, got %d", len(corporate))
	}
	if corporate[0].Amount() != 100000 || corporate[1].Amount() != 110000 {
		t.Errorf("corporate offers out of order: %v, %v", corporate[0].Amount(), corporate[1].Amount())
	}
	if corporate[0].Message() != "first offer" {
		t.Errorf("offer message lost on round trip: %q", corporate[0].Message())
	}

	events := got.History.Events()
	if len(events) != 1 || events[0].Type != domain.EventScandal || events[0].Round != 2 {
		t.Errorf("events lost on round trip: %v", events)
	}
}

func TestPostgresGetUnknownID(t *testing.T) {
	store := startStore(t)

	_, _, err := store.GetNegotiation(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNegotiationNotFound) {
		t.Fatalf("expected ErrNegotiationNotFound, got %v", err)
	}
}

func TestPostgresListReports(t *testing.T) {
	store := startStore(t)
	ctx := context.Background()

	ids := []string{"pg-list-1", "pg-list-2", "pg-list-3"}
	for i, id := range ids {
		n, report := sampleNegotiation(t, id)
		// Spread creation times so the DESC ordering is observable.
		n.CreatedAt = n.CreatedAt.Add(time.Duration(i) * time.Second)
		report.CreatedAt = n.CreatedAt
		if err := store.SaveNegotiation(ctx, n, report); err != nil {
			t.Fatalf("SaveNegotiation(%s) failed: %v", id, err)
		}
	}

	reports, err := store.ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].NegotiationID != "pg-list-3" {
		t.Errorf("reports not newest first: %s", reports[0].NegotiationID)
	}

	limited, err := store.ListReports(ctx, 1)
	if err != nil {
		t.Fatalf("ListReports with limit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].NegotiationID != "pg-list-3" {
		t.Errorf("unexpected limited list: %v", limited)
	}
}
