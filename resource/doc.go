// Package resource contains an in-memory backend for the core.Reader and
// core.Fetcher capabilities.
//
// The capability interfaces live in the core package to avoid dependency
// cycles and keep domain contracts central. The store here serves named byte
// blobs from process memory, which makes it the natural backend for tests,
// examples and hosts that embed their configuration in the binary.
package resource
