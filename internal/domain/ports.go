package domain

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited signals a transient rate-limit rejection from the text
	// generation service. Callers retry it with backoff.
	ErrRateLimited = errors.New("text generation rate limited")

	// ErrRateLimitExceeded is surfaced once the retry budget is spent.
	ErrRateLimitExceeded = errors.New("text generation rate limit exceeded")
)

// TextGenerator defines how the negotiation engine obtains message prose.
// The returned text is used verbatim as an offer's justification.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NegotiationStore defines transcript persistence.
type NegotiationStore interface {
	SaveNegotiation(ctx context.Context, n *Negotiation, report Report) error
	GetNegotiation(ctx context.Context, id NegotiationID) (*Negotiation, Report, error)
	// ListReports returns session summaries, newest first.
	ListReports(ctx context.Context, limit int) ([]Report, error)
}
