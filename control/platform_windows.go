//go:build windows
// +build windows

// File: control/platform_windows.go
// Windows-specific debug probe registrations.
// License: Apache-2.0

package control

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(c *Control) {
	c.Probes.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	c.Probes.RegisterProbe("platform.priority_class", func() any {
		proc, err := windows.GetCurrentProcess()
		if err != nil {
			return nil
		}
		class, err := windows.GetPriorityClass(proc)
		if err != nil {
			return nil
		}
		return class
	})
}
