// File: scheduler/optimizer.go
// Process-wide side effects of turbo mode transitions.
// License: Apache-2.0
//
// Each turbo mode owns a pair of process-level effects: a process priority
// and, at aggressive tiers, a timer-resolution request. Transitions always
// tear the outgoing mode down before setting the incoming mode up, so no
// path can leak an elevated state.

package scheduler

import (
	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
)

type processOptimizer struct {
	backend api.Backend
	log     *zap.Logger

	timerHeld  bool
	timerLevel api.TimerLevel
}

// timerLevelFor returns the timer request a mode holds, or 0 for none.
// Only aggressive tiers claim a resolution request; Ultra takes the finest.
func timerLevelFor(mode api.TurboMode) api.TimerLevel {
	switch mode {
	case api.TurboAggressive:
		return api.TimerModerate
	case api.TurboUltra:
		return api.TimerFine
	default:
		return 0
	}
}

// transition reverses the outgoing mode's effects, then applies the incoming
// mode's. Callers serialize transitions; this type has no lock of its own.
func (o *processOptimizer) transition(from, to api.TurboMode) {
	o.release()

	if to != api.TurboDisabled {
		if err := o.backend.ApplyProcessPriority(to); err != nil {
			o.log.Warn("process priority request refused",
				zap.Stringer("mode", to), zap.Error(err))
		}
	}
	if level := timerLevelFor(to); level != 0 {
		if err := o.backend.RequestTimerResolution(level); err != nil {
			o.log.Warn("timer resolution request refused",
				zap.Int("level", int(level)), zap.Error(err))
		} else {
			o.timerHeld = true
			o.timerLevel = level
		}
	}
	o.log.Info("turbo mode transition applied",
		zap.Stringer("from", from), zap.Stringer("to", to))
}

// release reverses all currently held process-level effects.
func (o *processOptimizer) release() {
	if o.timerHeld {
		if err := o.backend.ReleaseTimerResolution(o.timerLevel); err != nil {
			o.log.Warn("timer resolution release failed", zap.Error(err))
		}
		o.timerHeld = false
		o.timerLevel = 0
	}
	if err := o.backend.ApplyProcessPriority(api.TurboDisabled); err != nil {
		o.log.Debug("process priority restore refused", zap.Error(err))
	}
}
