// File: api/backend.go
// Package api defines the Backend contract implemented per platform.
// License: Apache-2.0

package api

// TimerLevel selects the granularity of a host timer-resolution request.
// Levels are acquired and released in pairs; the backend must tolerate a
// release for a level that was never acquired.
type TimerLevel int

const (
	// TimerFine requests the finest resolution the platform offers (1ms on Windows).
	TimerFine TimerLevel = 1
	// TimerModerate requests a relaxed resolution (2ms on Windows).
	TimerModerate TimerLevel = 2
)

// Backend applies scheduling hints to the calling OS thread and to the whole
// process through the native mechanism of the platform.
//
// Every method is best-effort: a refusal by the OS (permissions, policy) is an
// expected degradation, reported as an error only so the caller can log it.
// No Backend error may ever be treated as fatal by the registration path.
type Backend interface {
	// ApplyAffinity restricts the calling OS thread to exactly the given
	// cores. Out-of-range ids must be filtered before the native call; if
	// nothing survives filtering the thread keeps its prior affinity.
	ApplyAffinity(cores []int) error

	// ApplyPriority applies a role- and mode-derived scheduling priority to
	// the calling OS thread. Must be idempotent in effect.
	ApplyPriority(role Role, mode TurboMode) error

	// ApplyProcessPriority adjusts the process-wide priority for the given
	// mode. TurboDisabled restores the original priority.
	ApplyProcessPriority(mode TurboMode) error

	// RequestTimerResolution and ReleaseTimerResolution form a paired
	// acquire/release of a high-resolution timer request.
	RequestTimerResolution(level TimerLevel) error
	ReleaseTimerResolution(level TimerLevel) error

	// Name identifies the backend implementation ("linux", "windows", "noop").
	Name() string
}
