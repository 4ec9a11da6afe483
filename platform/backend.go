// File: platform/backend.go
// Package platform provides the native scheduling backends.
// License: Apache-2.0
//
// Platform-specific implementations live in backend_linux.go,
// backend_windows.go and backend_stub.go behind build tags. All of them share
// the api.Backend contract: best-effort hints, refusals reported for logging
// but never escalated.

package platform

import (
	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
)

// New returns the backend for the compiled platform.
func New(log *zap.Logger) api.Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return newPlatformBackend(log)
}

// validCores filters ids outside [0, limit) while preserving order.
func validCores(cores []int, limit int) []int {
	out := make([]int, 0, len(cores))
	for _, c := range cores {
		if c >= 0 && c < limit {
			out = append(out, c)
		}
	}
	return out
}
