package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/dgallion1/briefpress/internal/notion"
)

// IsRetryable checks if a store error is worth retrying: rate limits and
// server-side failures are, everything else is not.
func IsRetryable(err error) bool {
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return false
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3

// withRetry runs fn, retrying retryable failures with jittered backoff.
func withRetry(ctx context.Context, log *slog.Logger, op string, fn func() error) error {
	var err error
	for attempt := range MaxRetries {
		err = fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		log.Warn("retryable store error", "op", op, "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
