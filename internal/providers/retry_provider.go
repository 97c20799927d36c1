package providers

import (
	"context"
	"log/slog"
	"time"

	"jeopardy-stats-service/internal/domain/games"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a RawGameProvider with retry/backoff behavior.
// Decode errors are permanent and returned without retrying.
type retryingProvider struct {
	inner       RawGameProvider
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner RawGameProvider, logger *slog.Logger, maxAttempts int, backoff time.Duration) RawGameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) Name() string {
	return r.inner.Name()
}

func (r *retryingProvider) FetchRawGames(ctx context.Context) ([]games.RawGame, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		raws, err := r.inner.FetchRawGames(ctx)
		if err == nil {
			return raws, nil
		}
		lastErr = err
		if _, ok := AsDecodeError(err); ok {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt == r.maxAttempts {
			break
		}

		LogWarn(ctx, r.logger, r.Name(), "provider fetch retry", err, "attempt", attempt, "max_attempts", r.maxAttempts)

		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	LogWarn(ctx, r.logger, r.Name(), "provider fetch failed", lastErr, "attempts", r.maxAttempts)
	return nil, lastErr
}
