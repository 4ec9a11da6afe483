//go:build !linux && !windows
// +build !linux,!windows

// File: topology/probe_stub.go
// Probe stub for platforms without a usable topology query.
// License: Apache-2.0

package topology

func (d *Detector) probe(totalCores int) (*Hint, error) {
	return nil, nil
}
