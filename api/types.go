// File: api/types.go
// Package api holds the shared type contracts of the hostsched library.
// License: Apache-2.0

package api

// Role is the functional category assigned to a worker thread. It decides
// which core tier and scheduling priority the thread is hinted onto.
type Role int

const (
	RoleUnknown Role = iota
	RoleMainRender
	RoleAudio
	RoleInput
	RoleNetwork
	RoleBackground
)

func (r Role) String() string {
	switch r {
	case RoleMainRender:
		return "main-render"
	case RoleAudio:
		return "audio"
	case RoleInput:
		return "input"
	case RoleNetwork:
		return "network"
	case RoleBackground:
		return "background"
	default:
		return "unknown"
	}
}

// TurboMode is the escalation tier controlling how aggressively the scheduler
// claims cores and priority. Modes are totally ordered; comparisons with < and
// >= are meaningful.
type TurboMode int32

const (
	TurboDisabled TurboMode = iota
	TurboBalanced
	TurboAggressive
	TurboUltra
)

func (m TurboMode) String() string {
	switch m {
	case TurboBalanced:
		return "balanced"
	case TurboAggressive:
		return "aggressive"
	case TurboUltra:
		return "ultra"
	default:
		return "disabled"
	}
}

// CoreTopology describes the host CPU core tiers as seen by the scheduler.
// Core id slices are ordered best-first. The struct is built once during
// initialization and treated as immutable afterwards.
type CoreTopology struct {
	TotalCores  int
	Performance []int // throughput cores, best-first
	Efficiency  []int // power-efficient cores
	Turbo       []int // best subset of Performance, for latency-critical roles
	Ultra       []int // wider subset of Performance, |Ultra| >= |Turbo|
}

// AllCores returns the identity core set 0..TotalCores-1.
func (t CoreTopology) AllCores() []int {
	all := make([]int, t.TotalCores)
	for i := range all {
		all[i] = i
	}
	return all
}

// Clone deep-copies the topology so callers cannot alias internal slices.
func (t CoreTopology) Clone() CoreTopology {
	cp := t
	cp.Performance = append([]int(nil), t.Performance...)
	cp.Efficiency = append([]int(nil), t.Efficiency...)
	cp.Turbo = append([]int(nil), t.Turbo...)
	cp.Ultra = append([]int(nil), t.Ultra...)
	return cp
}

// Validate checks the structural invariants every detected topology must hold:
// turbo and ultra are subsets of performance, efficiency and performance are
// disjoint, and the tier sizes never exceed the logical core count.
func (t CoreTopology) Validate() error {
	if t.TotalCores < 1 {
		return ErrInvalidTopology
	}
	perf := make(map[int]struct{}, len(t.Performance))
	for _, c := range t.Performance {
		if c < 0 || c >= t.TotalCores {
			return ErrInvalidTopology
		}
		perf[c] = struct{}{}
	}
	for _, c := range t.Efficiency {
		if c < 0 || c >= t.TotalCores {
			return ErrInvalidTopology
		}
		if _, dup := perf[c]; dup {
			return ErrInvalidTopology
		}
	}
	for _, c := range t.Turbo {
		if _, ok := perf[c]; !ok {
			return ErrInvalidTopology
		}
	}
	for _, c := range t.Ultra {
		if _, ok := perf[c]; !ok {
			return ErrInvalidTopology
		}
	}
	if len(t.Ultra) < len(t.Turbo) {
		return ErrInvalidTopology
	}
	if len(t.Performance)+len(t.Efficiency) > t.TotalCores {
		return ErrInvalidTopology
	}
	return nil
}
