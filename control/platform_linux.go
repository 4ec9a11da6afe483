//go:build linux
// +build linux

// File: control/platform_linux.go
// Linux-specific debug probe registrations.
// License: Apache-2.0

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Linux-specific debug probes.
func RegisterPlatformProbes(c *Control) {
	c.Probes.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	c.Probes.RegisterProbe("platform.nice", func() any {
		raw, err := unix.Getpriority(unix.PRIO_PROCESS, 0)
		if err != nil {
			return nil
		}
		return 20 - raw
	})
}
