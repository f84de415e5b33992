package resource

import "fmt"

var (
	// ErrNotFound is returned when no resource is stored under the requested
	// name.
	ErrNotFound = fmt.Errorf("resource not found")
)
