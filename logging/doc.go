// Package logging provides a minimal logging interface and adapters for Cubo.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that resolvers and the CLI use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - CuboLogger, a configurable slog logger with contextual attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	c := cubo.New(func(o *cubo.Options) { o.Logger = logger })
//
// Arguments after the message are slog-style key/value pairs.
package logging
