package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// Fetcher retrieves the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError reports a transport failure or a non-2xx response for one page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type CollyFetcher struct {
	userAgent      string
	requestTimeout time.Duration
	transport      http.RoundTripper
}

type Option func(*CollyFetcher)

func WithUserAgent(ua string) Option {
	return func(f *CollyFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(f *CollyFetcher) {
		if d > 0 {
			f.requestTimeout = d
		}
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(f *CollyFetcher) {
		f.transport = rt
	}
}

func NewCollyFetcher(opts ...Option) *CollyFetcher {
	f := &CollyFetcher{
		userAgent:      defaultUserAgent,
		requestTimeout: 30 * time.Second,
		transport:      http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// contextTransport ties every request of a collector to the caller's context,
// so cancelling it aborts the request in flight.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// Fetch issues one GET for url. A fresh collector is built per call, so no
// response is ever served from a previous visit.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	c.ParseHTTPErrorResponse = true
	c.SetRequestTimeout(f.requestTimeout)
	c.WithTransport(contextTransport{ctx: ctx, base: f.transport})

	var (
		body   string
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})

	err := c.Visit(url)
	c.Wait()

	var fetchErr *FetchError
	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		fetchErr = &FetchError{URL: url, Err: err}
	case status == 0:
		fetchErr = &FetchError{URL: url, Err: errors.New("no response received")}
	case status < 200 || status > 299:
		fetchErr = &FetchError{URL: url, StatusCode: status, Err: errors.New(http.StatusText(status))}
	}
	if fetchErr != nil {
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, fetchErr.Error())
		return "", fetchErr
	}

	span.SetAttributes(attribute.Int("status", status), attribute.Int("bytes", len(body)))
	return body, nil
}
