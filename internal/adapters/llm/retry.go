package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
	"github.com/fluentnsunshine/funding-sim-v2/internal/observability"
)

const (
	defaultInitialDelay = 2 * time.Second
	defaultMaxAttempts  = 5
)

// RetryingGenerator wraps another generator and retries rate-limited calls
// with exponential backoff: the delay starts at 2s and doubles per attempt,
// up to 5 attempts. Non-rate-limit errors pass through untouched.
type RetryingGenerator struct {
	next         domain.TextGenerator
	initialDelay time.Duration
	maxAttempts  int
	sleep        func(ctx context.Context, d time.Duration) error
}

func WithRetry(next domain.TextGenerator) *RetryingGenerator {
	return &RetryingGenerator{
		next:         next,
		initialDelay: defaultInitialDelay,
		maxAttempts:  defaultMaxAttempts,
		sleep:        sleepCtx,
	}
}

func (r *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	delay := r.initialDelay

	for attempt := 1; ; attempt++ {
		text, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, domain.ErrRateLimited) {
			return "", err
		}
		if attempt >= r.maxAttempts {
			return "", fmt.Errorf("%w after %d attempts", domain.ErrRateLimitExceeded, attempt)
		}

		observability.LoggerFromContext(ctx).Warn("text generation rate limited, backing off",
			"attempt", attempt,
			"delay", delay.String(),
		)

		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
		delay *= 2
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
