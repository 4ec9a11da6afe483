// File: api/errors.go
// Common error values used across the hostsched library.
// License: Apache-2.0

package api

import "fmt"

var (
	ErrInvalidTopology = fmt.Errorf("core topology violates invariants")
	ErrNotSupported    = fmt.Errorf("operation not supported on this platform")
	ErrNotInitialized  = fmt.Errorf("scheduler not initialized")
)
