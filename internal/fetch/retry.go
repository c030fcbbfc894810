package fetch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// IsTransient reports whether a failed fetch is worth repeating: transport
// errors, rate limiting and server errors. Cancellation never is.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch {
	case fe.StatusCode == 0:
		return true
	case fe.StatusCode == http.StatusTooManyRequests:
		return true
	case fe.StatusCode >= 500:
		return true
	}
	return false
}

// RetryFetcher repeats transient failures of the wrapped fetcher with
// exponential backoff.
type RetryFetcher struct {
	next       Fetcher
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

type RetryOption func(*RetryFetcher)

// WithBackOff replaces the default exponential policy.
func WithBackOff(newBackOff func() backoff.BackOff) RetryOption {
	return func(r *RetryFetcher) {
		r.newBackOff = newBackOff
	}
}

func NewRetryFetcher(next Fetcher, maxRetries int, opts ...RetryOption) *RetryFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	r := &RetryFetcher{
		next:       next,
		maxRetries: uint64(maxRetries),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 10 * time.Second
			b.MaxElapsedTime = time.Minute
			return b
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	return backoff.RetryWithData(func() (string, error) {
		body, err := r.next.Fetch(ctx, url)
		if err != nil && !IsTransient(err) {
			return "", backoff.Permanent(err)
		}
		return body, err
	}, policy)
}
