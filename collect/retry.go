package collect

import (
	"context"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*lunchmenu.Document, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, waiting delays[i]
// before retry i. Only EFETCH failures are retried; an oversized document
// or a canceled context is returned immediately.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*lunchmenu.Document, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := fetch(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if lunchmenu.ErrorCode(err) != lunchmenu.EFETCH || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
