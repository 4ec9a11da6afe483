//go:build linux
// +build linux

// File: platform/backend_linux.go
// Linux scheduling backend: sched_setaffinity + SCHED_FIFO + setpriority.
// License: Apache-2.0
//
// Real-time policy requests routinely fail without CAP_SYS_NICE or a matching
// rtprio rlimit. That refusal is an expected outcome on stock desktops, so it
// is logged at debug level and the thread silently stays on SCHED_OTHER.

package platform

import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/emucore/hostsched/api"
)

// Real-time priority bases per role; Audio outranks MainRender outranks Input.
const (
	rtPrioAudio  = 50
	rtPrioRender = 40
	rtPrioInput  = 30
	rtPrioMax    = 95
)

// linuxCPUSetSize matches the kernel's CPU_SETSIZE (x/sys/unix does not
// export it; unix.CPUSet holds this many CPUs).
const linuxCPUSetSize = 1024

// Nice values per turbo mode. More negative is more favored.
var niceByMode = map[api.TurboMode]int{
	api.TurboBalanced:   -5,
	api.TurboAggressive: -10,
	api.TurboUltra:      -12,
}

type linuxBackend struct {
	log      *zap.Logger
	origNice int
}

func newPlatformBackend(log *zap.Logger) api.Backend {
	b := &linuxBackend{log: log}
	// getpriority(2) reports 20-nice; convert back so restore is exact.
	if raw, err := unix.Getpriority(unix.PRIO_PROCESS, 0); err == nil {
		b.origNice = 20 - raw
	}
	return b
}

func (b *linuxBackend) Name() string { return "linux" }

// ApplyAffinity restricts the calling thread to the given cores. The caller
// is expected to have locked the goroutine to its OS thread; LockOSThread is
// re-entrant, so locking again here is harmless.
func (b *linuxBackend) ApplyAffinity(cores []int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	for _, c := range validCores(cores, linuxCPUSetSize) {
		set.Set(c)
	}
	if set.Count() == 0 {
		// Nothing valid to pin to; keep the prior affinity.
		return nil
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return errors.Wrap(err, "sched_setaffinity")
	}
	return nil
}

// schedParam mirrors struct sched_param for sched_setscheduler(2).
type schedParam struct {
	priority int32
}

func (b *linuxBackend) ApplyPriority(role api.Role, mode api.TurboMode) error {
	runtime.LockOSThread()

	prio := rtPriority(role, mode)
	if prio <= 0 {
		// Network, Background and Unknown stay on SCHED_OTHER.
		return nil
	}

	param := schedParam{priority: int32(prio)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0,
		uintptr(unix.SCHED_FIFO), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		if errno == unix.EPERM || errno == unix.EACCES {
			b.log.Debug("real-time policy refused, staying on SCHED_OTHER",
				zap.Stringer("role", role), zap.Int("priority", prio))
			return nil
		}
		return errors.Wrapf(errno, "sched_setscheduler(SCHED_FIFO, %d)", prio)
	}
	return nil
}

// rtPriority returns the SCHED_FIFO priority for latency-critical roles,
// scaled up by mode, or 0 for roles that keep standard scheduling.
func rtPriority(role api.Role, mode api.TurboMode) int {
	var base int
	switch role {
	case api.RoleAudio:
		base = rtPrioAudio
	case api.RoleMainRender:
		base = rtPrioRender
	case api.RoleInput:
		base = rtPrioInput
	default:
		return 0
	}
	switch mode {
	case api.TurboAggressive:
		base += 10
	case api.TurboUltra:
		base += 20
	}
	if base > rtPrioMax {
		base = rtPrioMax
	}
	return base
}

func (b *linuxBackend) ApplyProcessPriority(mode api.TurboMode) error {
	nice, ok := niceByMode[mode]
	if !ok {
		nice = b.origNice
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, nice); err != nil {
		return errors.Wrapf(err, "setpriority(%d)", nice)
	}
	return nil
}

// Linux timers are already high resolution; the request/release pair exists
// only to keep the contract symmetric with Windows.
func (b *linuxBackend) RequestTimerResolution(level api.TimerLevel) error {
	b.log.Debug("timer resolution request is a no-op on linux", zap.Int("level", int(level)))
	return nil
}

func (b *linuxBackend) ReleaseTimerResolution(level api.TimerLevel) error {
	return nil
}
