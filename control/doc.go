// File: control/doc.go
// License: Apache-2.0

// Package control exposes runtime observability for the scheduler: a metrics
// registry, named debug probes, and a bounded history of recent thread
// registrations. Everything here is advisory; the scheduling hot path only
// ever appends to it.
package control
