//go:build windows
// +build windows

// File: platform/backend_windows.go
// Windows scheduling backend: thread affinity masks, thread priority levels,
// process priority classes and winmm timer resolution.
// License: Apache-2.0
//
// x/sys/windows exposes SetPriorityClass but not SetThreadPriority or
// SetThreadAffinityMask, so those go through kernel32 directly.

package platform

import (
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/emucore/hostsched/api"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procSetThreadPriority     = modkernel32.NewProc("SetThreadPriority")

	modwinmm            = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = modwinmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = modwinmm.NewProc("timeEndPeriod")
)

// Thread priority levels, winbase.h values.
const (
	threadPriorityLowest       = -2
	threadPriorityBelowNormal  = -1
	threadPriorityNormal       = 0
	threadPriorityAboveNormal  = 1
	threadPriorityHighest      = 2
	threadPriorityTimeCritical = 15
)

// Affinity masks are pointer-sized; cores beyond the first processor group
// are not addressable through SetThreadAffinityMask.
const maxMaskCores = 64

type windowsBackend struct {
	log *zap.Logger
}

func newPlatformBackend(log *zap.Logger) api.Backend {
	return &windowsBackend{log: log}
}

func (b *windowsBackend) Name() string { return "windows" }

func (b *windowsBackend) ApplyAffinity(cores []int) error {
	runtime.LockOSThread()

	var mask uintptr
	for _, c := range validCores(cores, maxMaskCores) {
		mask |= uintptr(1) << uint(c)
	}
	if mask == 0 {
		// Nothing valid to pin to; keep the prior affinity.
		return nil
	}

	thread, _, _ := procGetCurrentThread.Call()
	prev, _, callErr := procSetThreadAffinityMask.Call(thread, mask)
	if prev == 0 {
		return errors.Wrap(callErr, "SetThreadAffinityMask")
	}
	return nil
}

// threadPriority is the fixed (role, mode) lookup. Network and unclassified
// roles always stay at normal priority.
func threadPriority(role api.Role, mode api.TurboMode) int {
	switch role {
	case api.RoleAudio:
		switch mode {
		case api.TurboBalanced:
			return threadPriorityHighest
		case api.TurboAggressive, api.TurboUltra:
			return threadPriorityTimeCritical
		}
	case api.RoleMainRender:
		switch mode {
		case api.TurboBalanced:
			return threadPriorityAboveNormal
		case api.TurboAggressive, api.TurboUltra:
			return threadPriorityHighest
		}
	case api.RoleInput:
		if mode >= api.TurboAggressive {
			return threadPriorityAboveNormal
		}
	case api.RoleBackground:
		switch mode {
		case api.TurboAggressive:
			return threadPriorityBelowNormal
		case api.TurboUltra:
			return threadPriorityLowest
		}
	}
	return threadPriorityNormal
}

func (b *windowsBackend) ApplyPriority(role api.Role, mode api.TurboMode) error {
	runtime.LockOSThread()

	prio := threadPriority(role, mode)
	if prio == threadPriorityNormal {
		return nil
	}
	thread, _, _ := procGetCurrentThread.Call()
	ok, _, callErr := procSetThreadPriority.Call(thread, uintptr(prio))
	if ok == 0 {
		return errors.Wrapf(callErr, "SetThreadPriority(%d)", prio)
	}
	return nil
}

func (b *windowsBackend) ApplyProcessPriority(mode api.TurboMode) error {
	var class uint32
	switch mode {
	case api.TurboBalanced:
		class = windows.ABOVE_NORMAL_PRIORITY_CLASS
	case api.TurboAggressive, api.TurboUltra:
		class = windows.HIGH_PRIORITY_CLASS
	default:
		class = windows.NORMAL_PRIORITY_CLASS
	}
	proc, err := windows.GetCurrentProcess()
	if err != nil {
		return errors.Wrap(err, "GetCurrentProcess")
	}
	if err := windows.SetPriorityClass(proc, class); err != nil {
		return errors.Wrapf(err, "SetPriorityClass(0x%x)", class)
	}
	return nil
}

func (b *windowsBackend) RequestTimerResolution(level api.TimerLevel) error {
	res, _, _ := procTimeBeginPeriod.Call(uintptr(level))
	if res != 0 { // TIMERR_NOERROR == 0
		return errors.Errorf("timeBeginPeriod(%d) failed: %d", level, res)
	}
	return nil
}

func (b *windowsBackend) ReleaseTimerResolution(level api.TimerLevel) error {
	res, _, _ := procTimeEndPeriod.Call(uintptr(level))
	if res != 0 {
		return errors.Errorf("timeEndPeriod(%d) failed: %d", level, res)
	}
	return nil
}
