// Package testutil contains testify mocks for the core capabilities (Reader,
// Fetcher, Observer) used across tests to assert which resolution path a
// locator took. They are not intended for production usage.
package testutil
