// File: plan/guest.go
// Ultra-mode expansion of guest-reported affinity and priority intent.
// License: Apache-2.0
//
// The emulated environment schedules its own threads with a small priority
// number (lower = more urgent) and an N-bit core mask sized for the guest
// machine. Under ultra mode that intent is widened onto the host's ultra
// tier: the guest's claimed core count is scaled by the affinity multiplier
// and mapped onto the best host cores.

package plan

import (
	"math"
	"math/bits"

	"github.com/emucore/hostsched/api"
)

// PriorityTier is the host-side bucket a guest priority lands in.
type PriorityTier int

const (
	TierNormal PriorityTier = iota
	TierElevated
	TierHigh
	TierTimeCritical
)

func (t PriorityTier) String() string {
	switch t {
	case TierElevated:
		return "elevated"
	case TierHigh:
		return "high"
	case TierTimeCritical:
		return "time-critical"
	default:
		return "normal"
	}
}

// Guest priority thresholds. Monotonic: a smaller guest number never maps to
// a lower host tier.
const (
	guestPrioTimeCritical = 64
	guestPrioHigh         = 96
	guestPrioElevated     = 128
)

// GuestPriorityTier buckets a guest priority number into a host tier.
func GuestPriorityTier(guestPriority int32) PriorityTier {
	switch {
	case guestPriority < guestPrioTimeCritical:
		return TierTimeCritical
	case guestPriority < guestPrioHigh:
		return TierHigh
	case guestPriority < guestPrioElevated:
		return TierElevated
	default:
		return TierNormal
	}
}

// GuestPlan expands a guest affinity mask onto host cores. The number of set
// bits (floored at one) is scaled by multiplier and clamped to the ultra
// tier; when the host has no ultra tier the performance cores stand in, and
// the result is never empty.
func GuestPlan(guestMask uint32, multiplier float64, topo api.CoreTopology) []int {
	k := bits.OnesCount32(guestMask)
	if k < 1 {
		k = 1
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}

	pool := topo.Ultra
	if len(pool) == 0 {
		pool = topo.Performance
	}
	if len(pool) == 0 {
		return topo.AllCores()
	}

	target := int(math.Round(float64(k) * multiplier))
	if target < 1 {
		target = 1
	}
	if target > len(pool) {
		target = len(pool)
	}
	return append([]int(nil), pool[:target]...)
}
