// File: scheduler/options.go
// Functional options for Context construction.
// License: Apache-2.0

package scheduler

import (
	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
	"github.com/emucore/hostsched/control"
	"github.com/emucore/hostsched/topology"
)

// Option customizes a Context.
type Option func(*Context)

// WithLogger sets the logger used by the context and its backend.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithBackend overrides the platform backend, e.g. with fake.NewBackend()
// for deterministic tests.
func WithBackend(b api.Backend) Option {
	return func(c *Context) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithDetector overrides the topology detector.
func WithDetector(d *topology.Detector) Option {
	return func(c *Context) {
		if d != nil {
			c.detector = d
		}
	}
}

// WithTotalCores pins the logical core count instead of asking the runtime.
// Mainly for tests and benchmarking rigs.
func WithTotalCores(n int) Option {
	return func(c *Context) { c.totalCores = n }
}

// WithControl attaches an observability sink.
func WithControl(ctrl *control.Control) Option {
	return func(c *Context) { c.control = ctrl }
}

// WithAffinityMultiplier presets the ultra-mode core expansion factor.
func WithAffinityMultiplier(m float64) Option {
	return func(c *Context) { c.storeMultiplier(m) }
}
