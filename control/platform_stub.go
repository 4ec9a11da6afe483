//go:build !linux && !windows
// +build !linux,!windows

// File: control/platform_stub.go
// License: Apache-2.0

package control

import "runtime"

// RegisterPlatformProbes sets generic probes on platforms without native
// scheduling introspection.
func RegisterPlatformProbes(c *Control) {
	c.Probes.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
