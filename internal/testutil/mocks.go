package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/cubo/core"
)

// MockReader is a testify mock implementing core.Reader.
type MockReader struct {
	mock.Mock
}

// Read records the call and returns the configured bytes and error.
func (m *MockReader) Read(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// MockFetcher is a testify mock implementing core.Fetcher.
type MockFetcher struct {
	mock.Mock
}

// Fetch records the call and returns the configured bytes and error.
func (m *MockFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	args := m.Called(ctx, locator)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// MockObserver is a testify mock implementing core.Observer.
type MockObserver struct {
	mock.Mock
}

// ObserveResolution records the call.
func (m *MockObserver) ObserveResolution(kind core.SourceKind, locator string, err error, d time.Duration) {
	m.Called(kind, locator, err, d)
}
