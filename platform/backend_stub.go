//go:build !linux && !windows
// +build !linux,!windows

// File: platform/backend_stub.go
// No-op backend for platforms without native scheduling hint support.
// License: Apache-2.0
//
// macOS in particular offers no thread affinity API worth using; hints are
// accepted and discarded so the rest of the scheduler behaves identically
// everywhere.

package platform

import (
	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
)

type stubBackend struct {
	log *zap.Logger
}

func newPlatformBackend(log *zap.Logger) api.Backend {
	return &stubBackend{log: log}
}

func (b *stubBackend) Name() string { return "stub" }

func (b *stubBackend) ApplyAffinity(cores []int) error {
	b.log.Debug("affinity hint ignored on this platform", zap.Ints("cores", cores))
	return nil
}

func (b *stubBackend) ApplyPriority(role api.Role, mode api.TurboMode) error {
	return nil
}

func (b *stubBackend) ApplyProcessPriority(mode api.TurboMode) error {
	return nil
}

func (b *stubBackend) RequestTimerResolution(level api.TimerLevel) error {
	return nil
}

func (b *stubBackend) ReleaseTimerResolution(level api.TimerLevel) error {
	return nil
}
