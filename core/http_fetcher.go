package core

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRequestIDHeader carries the id generated for every remote fetch.
const DefaultRequestIDHeader = "X-Request-Id"

// HTTPFetcherOptions configures an HTTPFetcher.
type HTTPFetcherOptions struct {
	// Client performs the requests. Defaults to http.DefaultClient, which has
	// no timeout; set Client.Timeout or pass a context deadline to bound a fetch.
	Client *http.Client

	// UserAgent, when set, is sent with every request.
	UserAgent string

	// RequestIDHeader names the header carrying the per-request id.
	RequestIDHeader string
}

// HTTPFetcher fetches remote resources with GET requests and returns the
// response body. Responses outside the 2xx range yield a *StatusError
// carrying the body.
type HTTPFetcher struct {
	opts HTTPFetcherOptions
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(optFns ...func(o *HTTPFetcherOptions)) *HTTPFetcher {
	opts := HTTPFetcherOptions{
		Client:          http.DefaultClient,
		RequestIDHeader: DefaultRequestIDHeader,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	return &HTTPFetcher{opts: opts}
}

// Fetch issues a GET request for locator and returns the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", locator, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if f.opts.RequestIDHeader != "" {
		req.Header.Set(f.opts.RequestIDHeader, requestID)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("cubo.request_id", requestID))

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", locator, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Locator: locator, StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
