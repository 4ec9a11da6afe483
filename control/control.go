// File: control/control.go
// Composition of metrics, probes and history into one control surface.
// License: Apache-2.0

package control

import (
	"time"

	"github.com/emucore/hostsched/api"
)

// Control is the observability sink the scheduler reports into.
type Control struct {
	Metrics *MetricsRegistry
	Probes  *DebugProbes
	History *History
}

// New builds a Control with platform probes registered.
func New() *Control {
	c := &Control{
		Metrics: NewMetricsRegistry(),
		Probes:  NewDebugProbes(),
		History: NewHistory(0),
	}
	c.Probes.RegisterProbe("history.recent", func() any { return c.History.Recent() })
	RegisterPlatformProbes(c)
	return c
}

// RecordRegistration notes one applied scheduling hint.
func (c *Control) RecordRegistration(name string, role api.Role, mode api.TurboMode, cores []int) {
	c.Metrics.Inc("registrations.total")
	c.Metrics.Inc("registrations." + role.String())
	c.History.Add(RegistrationEvent{
		Name:  name,
		Role:  role,
		Mode:  mode,
		Cores: append([]int(nil), cores...),
		At:    time.Now(),
	})
}

// RecordModeChange notes a turbo mode transition.
func (c *Control) RecordModeChange(from, to api.TurboMode) {
	c.Metrics.Set("turbo.mode", to.String())
	c.Metrics.Set("turbo.last_transition", from.String()+" -> "+to.String())
	c.Metrics.Inc("turbo.transitions")
}

// SetTopology publishes the detected topology as probes.
func (c *Control) SetTopology(topo api.CoreTopology) {
	snapshot := topo.Clone()
	c.Probes.RegisterProbe("topology", func() any { return snapshot })
	c.Metrics.Set("topology.total_cores", snapshot.TotalCores)
	c.Metrics.Set("topology.performance_cores", len(snapshot.Performance))
	c.Metrics.Set("topology.efficiency_cores", len(snapshot.Efficiency))
}
