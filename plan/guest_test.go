// File: plan/guest_test.go
// License: Apache-2.0

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emucore/hostsched/api"
	"github.com/emucore/hostsched/plan"
	"github.com/emucore/hostsched/topology"
)

func TestGuestPlanScalesMask(t *testing.T) {
	topo := topology.Heuristic(24) // ultra tier has 12 cores

	// Four guest cores * 1.5 = 6 host cores, best-first from the ultra tier.
	cores := plan.GuestPlan(0b1111, 1.5, topo)
	assert.Equal(t, topo.Ultra[:6], cores)

	// Multiplier 1.0 maps one-to-one.
	assert.Equal(t, topo.Ultra[:4], plan.GuestPlan(0b1111, 1.0, topo))
}

func TestGuestPlanClamps(t *testing.T) {
	topo := topology.Heuristic(24)

	// 32 set bits * 1.5 overflows the ultra tier; clamp to its size.
	assert.Equal(t, topo.Ultra, plan.GuestPlan(0xFFFFFFFF, 1.5, topo))

	// An empty mask still claims one core.
	assert.Equal(t, topo.Ultra[:1], plan.GuestPlan(0, 1.0, topo))

	// Sub-1.0 multipliers are treated as 1.0.
	assert.Equal(t, topo.Ultra[:2], plan.GuestPlan(0b11, 0.25, topo))
}

func TestGuestPlanFallsBackWithoutUltraTier(t *testing.T) {
	topo := api.CoreTopology{
		TotalCores:  8,
		Performance: []int{0, 1, 2, 3},
	}
	assert.Equal(t, []int{0, 1}, plan.GuestPlan(0b11, 1.0, topo))

	bare := api.CoreTopology{TotalCores: 4}
	assert.Equal(t, bare.AllCores(), plan.GuestPlan(0b11, 1.0, bare))
}

func TestGuestPriorityTierThresholds(t *testing.T) {
	cases := map[int32]plan.PriorityTier{
		0:   plan.TierTimeCritical,
		63:  plan.TierTimeCritical,
		64:  plan.TierHigh,
		95:  plan.TierHigh,
		96:  plan.TierElevated,
		127: plan.TierElevated,
		128: plan.TierNormal,
		191: plan.TierNormal,
	}
	for prio, want := range cases {
		assert.Equalf(t, want, plan.GuestPriorityTier(prio), "priority=%d", prio)
	}
}

func TestGuestPriorityTierMonotonic(t *testing.T) {
	prev := plan.TierTimeCritical
	for prio := int32(0); prio <= 200; prio++ {
		tier := plan.GuestPriorityTier(prio)
		assert.LessOrEqualf(t, tier, prev, "priority=%d", prio)
		prev = tier
	}
}
