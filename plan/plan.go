// File: plan/plan.go
// Package plan computes core assignments for (role, mode, topology) tuples.
// License: Apache-2.0
//
// Planning is pure: no OS calls, no shared state. The planner guarantees a
// non-empty core set for every input combination; the backend is the only
// place where a hint can still be refused.

package plan

import "github.com/emucore/hostsched/api"

// System-size bands. Isolation on a tiny host starves it, and a small host
// has too few cores to separate roles safely, so both bands deliberately
// overlap role assignments.
const (
	tinyMaxCores  = 4
	smallMaxCores = 8
)

// Plan returns the cores the calling thread should be restricted to.
// gpuReserved is the renderer's worker-core reservation hint; it is consulted
// only on large systems and never shrinks a set below one core.
func Plan(role api.Role, mode api.TurboMode, topo api.CoreTopology, gpuReserved int) []int {
	total := topo.TotalCores
	var cores []int

	switch {
	case total <= tinyMaxCores:
		cores = topo.AllCores()

	case total <= smallMaxCores:
		if critical(role) {
			n := (2*total+2)/3 + 1 // ceil(2/3 total) + 1
			if n > total {
				n = total
			}
			cores = topo.AllCores()[:n]
		} else {
			cores = topo.AllCores()
		}

	default:
		cores = planLarge(role, mode, topo)
		cores = reserveGPUCores(role, cores, gpuReserved)
	}

	// Safety net: never hand out an empty set.
	if len(cores) == 0 {
		cores = topo.AllCores()
	}
	return cores
}

// planLarge applies the per-role policy for hosts with more than eight cores.
func planLarge(role api.Role, mode api.TurboMode, topo api.CoreTopology) []int {
	switch role {
	case api.RoleMainRender:
		if mode >= api.TurboAggressive && len(topo.Turbo) > 0 {
			return topo.Turbo
		}
		return topo.Performance

	case api.RoleAudio:
		// Audio underruns are directly perceptible, so audio claims the
		// turbo tier regardless of the current mode.
		if len(topo.Turbo) > 0 {
			return topo.Turbo
		}
		return topo.Performance

	case api.RoleInput, api.RoleNetwork:
		return topo.Performance

	default: // Background, Unknown
		if len(topo.Efficiency) > 0 {
			return topo.Efficiency
		}
		return topo.Performance
	}
}

// reserveGPUCores trims the best cores from non-critical role sets so the
// renderer's own workers keep headroom. A hint, not a hard constraint: at
// least one core always survives.
func reserveGPUCores(role api.Role, cores []int, gpuReserved int) []int {
	if gpuReserved <= 0 || critical(role) {
		return cores
	}
	if gpuReserved >= len(cores) {
		gpuReserved = len(cores) - 1
	}
	if gpuReserved <= 0 {
		return cores
	}
	return cores[gpuReserved:]
}

func critical(role api.Role) bool {
	return role == api.RoleMainRender || role == api.RoleAudio
}
