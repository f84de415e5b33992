package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource is returned when a source is neither a mapping, an
	// Object nor a locator string.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNotObject is returned when resolved content does not decode to a JSON
	// object.
	ErrNotObject = errors.New("resolved content is not a JSON object")

	// ErrNoReader is returned when a local path is resolved without a Reader.
	ErrNoReader = errors.New("no reader configured")

	// ErrNoFetcher is returned when a remote locator is resolved without a
	// Fetcher for its scheme.
	ErrNoFetcher = errors.New("no fetcher configured")
)

// StatusError reports a non-2xx response from a remote resource. Body
// holds the response body, which Resolve still decodes.
type StatusError struct {
	Locator    string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Locator, e.StatusCode)
}
