package export

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/tagexport"
)

var _ tagexport.Loader = (*RetryLoader)(nil)

// DefaultRetryDelays returns the backoff delays for page load retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryLoader retries failed page loads with backoff. Invalid requests and
// missing pages fail immediately.
type RetryLoader struct {
	next   tagexport.Loader
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryLoader wraps next. One initial attempt is made plus one retry
// per delay. A nil logger disables retry logging.
func NewRetryLoader(next tagexport.Loader, delays []time.Duration, logger *slog.Logger) *RetryLoader {
	return &RetryLoader{next: next, delays: delays, logger: logger}
}

// Load delegates to the wrapped loader until it succeeds, the error is
// permanent or the retries are exhausted.
func (l *RetryLoader) Load(ctx context.Context, url string) (tagexport.Document, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		doc, err := l.next.Load(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= len(l.delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if l.logger != nil {
			l.logger.Warn("retry", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.delays[attempt]):
		}
	}
	return nil, lastErr
}

// Close delegates to the wrapped loader.
func (l *RetryLoader) Close() error {
	return l.next.Close()
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch tagexport.ErrorCode(err) {
	case tagexport.EINVALID, tagexport.ENOTFOUND:
		return false
	}
	return true
}
