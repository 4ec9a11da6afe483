//go:build linux
// +build linux

// File: platform/backend_linux_test.go
// License: Apache-2.0

package platform

import (
	"testing"

	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
)

func TestRTPriorityOrdering(t *testing.T) {
	for _, mode := range []api.TurboMode{api.TurboDisabled, api.TurboBalanced, api.TurboAggressive, api.TurboUltra} {
		audio := rtPriority(api.RoleAudio, mode)
		render := rtPriority(api.RoleMainRender, mode)
		input := rtPriority(api.RoleInput, mode)
		if !(audio > render && render > input) {
			t.Fatalf("mode=%s: expected audio > render > input, got %d/%d/%d", mode, audio, render, input)
		}
	}
}

func TestRTPriorityScalesWithMode(t *testing.T) {
	base := rtPriority(api.RoleAudio, api.TurboBalanced)
	if rtPriority(api.RoleAudio, api.TurboAggressive) <= base {
		t.Error("aggressive mode must raise the real-time priority")
	}
	if rtPriority(api.RoleAudio, api.TurboUltra) > rtPrioMax {
		t.Error("real-time priority must stay capped")
	}
}

func TestRTPriorityStandardRoles(t *testing.T) {
	for _, role := range []api.Role{api.RoleNetwork, api.RoleBackground, api.RoleUnknown} {
		if got := rtPriority(role, api.TurboUltra); got != 0 {
			t.Errorf("role=%s must stay on standard scheduling, got priority %d", role, got)
		}
	}
}

func TestValidCoresFilters(t *testing.T) {
	got := validCores([]int{-1, 0, 3, 64, 1023, 5000}, 64)
	want := []int{0, 3}
	if len(got) != len(want) || got[0] != 0 || got[1] != 3 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestApplyAffinityEmptySetKeepsPrior(t *testing.T) {
	b := New(zap.NewNop())
	if err := b.ApplyAffinity([]int{-5, 100000}); err != nil {
		t.Fatalf("an all-invalid core set must be a silent no-op, got %v", err)
	}
}
