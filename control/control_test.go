// File: control/control_test.go
// License: Apache-2.0

package control_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emucore/hostsched/api"
	"github.com/emucore/hostsched/control"
	"github.com/emucore/hostsched/topology"
)

func TestHistoryEvictsOldest(t *testing.T) {
	h := control.NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Add(control.RegistrationEvent{Name: fmt.Sprintf("worker-%d", i)})
	}

	require.Equal(t, 3, h.Len())
	recent := h.Recent()
	assert.Equal(t, "worker-2", recent[0].Name)
	assert.Equal(t, "worker-4", recent[2].Name)
}

func TestRecordRegistrationCounts(t *testing.T) {
	c := control.New()
	c.RecordRegistration("AudioOut", api.RoleAudio, api.TurboBalanced, []int{0, 1})
	c.RecordRegistration("AudioIn", api.RoleAudio, api.TurboBalanced, []int{0, 1})
	c.RecordRegistration("Loader", api.RoleBackground, api.TurboBalanced, []int{6, 7})

	snap := c.Metrics.GetSnapshot()
	assert.Equal(t, int64(3), snap["registrations.total"])
	assert.Equal(t, int64(2), snap["registrations.audio"])
	assert.Equal(t, int64(1), snap["registrations.background"])
	assert.Equal(t, 3, c.History.Len())
}

func TestRecordModeChange(t *testing.T) {
	c := control.New()
	c.RecordModeChange(api.TurboDisabled, api.TurboUltra)

	snap := c.Metrics.GetSnapshot()
	assert.Equal(t, "ultra", snap["turbo.mode"])
	assert.Equal(t, "disabled -> ultra", snap["turbo.last_transition"])
}

func TestTopologyProbe(t *testing.T) {
	c := control.New()
	c.SetTopology(topology.Heuristic(24))

	state := c.Probes.DumpState()
	topo, ok := state["topology"].(api.CoreTopology)
	require.True(t, ok, "topology probe must be registered")
	assert.Equal(t, 24, topo.TotalCores)

	assert.Contains(t, state, "platform.cpus")
}

func TestHistoryEventsAreCopied(t *testing.T) {
	c := control.New()
	cores := []int{0, 1, 2}
	c.RecordRegistration("w", api.RoleInput, api.TurboDisabled, cores)
	cores[0] = 99

	recent := c.History.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, []int{0, 1, 2}, recent[0].Cores)
}
