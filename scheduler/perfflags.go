// File: scheduler/perfflags.go
// Process-wide performance mode flags.
// License: Apache-2.0

package scheduler

import "sync/atomic"

// PerfFlags are cheap atomic switches the embedding application consults to
// shed optional work (overlay rendering, heavy UI refresh) while a title is
// running. They carry no scheduling semantics of their own.
type PerfFlags struct {
	gameRunning    atomic.Bool
	skipHeavyUI    atomic.Bool
	minimalOverlay atomic.Bool
}

// SetGameRunning flags that emulation is actively running.
func (p *PerfFlags) SetGameRunning(running bool) { p.gameRunning.Store(running) }

// GameRunning reports whether emulation is actively running.
func (p *PerfFlags) GameRunning() bool { return p.gameRunning.Load() }

// SetSkipHeavyUI toggles shedding of expensive UI work during gameplay.
func (p *PerfFlags) SetSkipHeavyUI(skip bool) { p.skipHeavyUI.Store(skip) }

// SetMinimalOverlay toggles the reduced overlay during gameplay.
func (p *PerfFlags) SetMinimalOverlay(minimal bool) { p.minimalOverlay.Store(minimal) }

// MinimalOverlay reports whether the reduced overlay is requested.
func (p *PerfFlags) MinimalOverlay() bool { return p.minimalOverlay.Load() }

// ShouldSkipUI reports whether optional UI work should be skipped right now.
func (p *PerfFlags) ShouldSkipUI() bool {
	return p.gameRunning.Load() && p.skipHeavyUI.Load()
}
