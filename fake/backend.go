// File: fake/backend.go
// Package fake provides deterministic test doubles for hostsched.
// License: Apache-2.0

package fake

import (
	"sync"

	"github.com/emucore/hostsched/api"
)

// PriorityCall records one ApplyPriority invocation.
type PriorityCall struct {
	Role api.Role
	Mode api.TurboMode
}

// Backend is a recording api.Backend. It never touches the OS, so planner
// and scheduler transition logic can be unit tested on any platform.
type Backend struct {
	mu sync.Mutex

	AffinityCalls [][]int
	PriorityCalls []PriorityCall
	ProcessModes  []api.TurboMode
	TimerRequests []api.TimerLevel
	TimerReleases []api.TimerLevel

	// Err, when set, is returned from every call to exercise the
	// degraded-but-not-fatal paths.
	Err error
}

// NewBackend creates an empty recording backend.
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "fake" }

func (b *Backend) ApplyAffinity(cores []int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.AffinityCalls = append(b.AffinityCalls, append([]int(nil), cores...))
	return b.Err
}

func (b *Backend) ApplyPriority(role api.Role, mode api.TurboMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.PriorityCalls = append(b.PriorityCalls, PriorityCall{Role: role, Mode: mode})
	return b.Err
}

func (b *Backend) ApplyProcessPriority(mode api.TurboMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ProcessModes = append(b.ProcessModes, mode)
	return b.Err
}

func (b *Backend) RequestTimerResolution(level api.TimerLevel) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.TimerRequests = append(b.TimerRequests, level)
	return b.Err
}

func (b *Backend) ReleaseTimerResolution(level api.TimerLevel) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.TimerReleases = append(b.TimerReleases, level)
	return b.Err
}

// AffinityCount returns how many affinity applications were recorded.
func (b *Backend) AffinityCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.AffinityCalls)
}

// LastProcessMode returns the most recent process priority mode, or
// TurboDisabled when none was applied.
func (b *Backend) LastProcessMode() api.TurboMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.ProcessModes) == 0 {
		return api.TurboDisabled
	}
	return b.ProcessModes[len(b.ProcessModes)-1]
}

// OutstandingTimers reports acquired-minus-released timer requests. A clean
// shutdown must leave this at zero.
func (b *Backend) OutstandingTimers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.TimerRequests) - len(b.TimerReleases)
}
