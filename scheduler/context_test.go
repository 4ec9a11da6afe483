// File: scheduler/context_test.go
// License: Apache-2.0

package scheduler_test

import (
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/emucore/hostsched/api"
	"github.com/emucore/hostsched/control"
	"github.com/emucore/hostsched/fake"
	"github.com/emucore/hostsched/scheduler"
	"github.com/emucore/hostsched/topology"
)

// newTestContext builds an initialized, enabled context on a fake backend
// with a deterministic heuristic topology of totalCores cores.
func newTestContext(t *testing.T, totalCores int) (*scheduler.Context, *fake.Backend) {
	t.Helper()
	backend := fake.NewBackend()
	ctx := scheduler.New(
		scheduler.WithBackend(backend),
		scheduler.WithTotalCores(totalCores),
		scheduler.WithDetector(topology.NewDetector(topology.WithFs(afero.NewMemMapFs()))),
	)
	if !ctx.Initialize() {
		t.Fatal("Initialize() failed")
	}
	ctx.Enable(true)
	return ctx, backend
}

func TestRegisterThreadAppliesHints(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")

	if got := backend.AffinityCount(); got != 1 {
		t.Fatalf("expected 1 affinity call, got %d", got)
	}
	if len(backend.PriorityCalls) != 1 {
		t.Fatalf("expected 1 priority call, got %d", len(backend.PriorityCalls))
	}
	if backend.PriorityCalls[0].Role != api.RoleAudio {
		t.Errorf("expected audio role, got %s", backend.PriorityCalls[0].Role)
	}
	if !h.Applied() || h.LastRole() != api.RoleAudio {
		t.Errorf("handle memo not updated: applied=%v role=%s", h.Applied(), h.LastRole())
	}
}

func TestRegisterThreadIdempotent(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "gxm_render_0")
	ctx.RegisterThread(&h, "gxm_render_0")

	if got := backend.AffinityCount(); got != 1 {
		t.Fatalf("duplicate registration must be suppressed, got %d affinity calls", got)
	}
}

func TestModeChangeInvalidatesMemo(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "gxm_render_0")
	ctx.SetTurboMode(api.TurboAggressive)
	ctx.RegisterThread(&h, "gxm_render_0")

	if got := backend.AffinityCount(); got != 2 {
		t.Fatalf("mode change must invalidate the memo, got %d affinity calls", got)
	}
	// Second application lands on the turbo tier.
	last := backend.AffinityCalls[1]
	want := ctx.Topology().Turbo
	if len(last) != len(want) {
		t.Errorf("expected turbo tier %v after aggressive switch, got %v", want, last)
	}
}

func TestRegisterThreadDisabledIsNoop(t *testing.T) {
	ctx, backend := newTestContext(t, 24)
	ctx.Enable(false)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")

	if backend.AffinityCount() != 0 {
		t.Fatal("registration while disabled must not touch the backend")
	}
	if h.Applied() {
		t.Error("handle must stay clean while disabled")
	}
}

func TestUnknownRoleIsNeverTouched(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "")
	ctx.RegisterThreadWithRole(&h, "mystery", api.RoleUnknown)

	if backend.AffinityCount() != 0 {
		t.Fatal("unknown role must never be scheduled")
	}
}

func TestRegisterThreadWithRoleBypassesClassification(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	ctx.RegisterThreadWithRole(&h, "AudioOutputThread", api.RoleBackground)

	if backend.PriorityCalls[0].Role != api.RoleBackground {
		t.Fatalf("explicit role must win over the name, got %s", backend.PriorityCalls[0].Role)
	}
}

func TestUninitializedContextIsInert(t *testing.T) {
	backend := fake.NewBackend()
	ctx := scheduler.New(scheduler.WithBackend(backend))

	ctx.Enable(true)
	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")
	ctx.SetTurboMode(api.TurboUltra)
	ctx.Shutdown()

	if ctx.IsEnabled() {
		t.Error("Enable before Initialize must be a no-op")
	}
	if backend.AffinityCount() != 0 || backend.OutstandingTimers() != 0 {
		t.Error("uninitialized context must never touch the backend")
	}
}

func TestGuestOptimizationUltraOnly(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var h scheduler.ThreadHandle
	for _, mode := range []api.TurboMode{api.TurboDisabled, api.TurboBalanced, api.TurboAggressive} {
		ctx.SetTurboMode(mode)
		ctx.ApplyGuestThreadOptimization(&h, "SceGameThread", 64, 0b1)
	}
	if backend.AffinityCount() != 0 {
		t.Fatal("guest optimization must be a no-op below ultra mode")
	}

	ctx.SetTurboMode(api.TurboUltra)
	ctx.ApplyGuestThreadOptimization(&h, "SceGameThread", 64, 0b1)

	if backend.AffinityCount() != 1 {
		t.Fatal("guest optimization must apply in ultra mode")
	}
	if got := ctx.GetAffinityMultiplier(); got != 1.5 {
		t.Errorf("ultra mode must seed the default multiplier, got %v", got)
	}
}

func TestBackendRefusalsAreSwallowed(t *testing.T) {
	ctx, backend := newTestContext(t, 24)
	backend.Err = api.ErrNotSupported

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")

	if !h.Applied() {
		t.Fatal("a refused hint must not block the registration path")
	}
}

func TestAffinityMultiplierClamp(t *testing.T) {
	ctx, _ := newTestContext(t, 24)

	if got := ctx.GetAffinityMultiplier(); got != 1.0 {
		t.Fatalf("unset multiplier must read as 1.0, got %v", got)
	}
	ctx.SetAffinityMultiplier(0.3)
	if got := ctx.GetAffinityMultiplier(); got != 1.0 {
		t.Errorf("multiplier must clamp to 1.0, got %v", got)
	}
	ctx.SetAffinityMultiplier(2.5)
	if got := ctx.GetAffinityMultiplier(); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
}

func TestControlRecordsRegistrations(t *testing.T) {
	backend := fake.NewBackend()
	ctrl := control.New()
	ctx := scheduler.New(
		scheduler.WithBackend(backend),
		scheduler.WithTotalCores(24),
		scheduler.WithDetector(topology.NewDetector(topology.WithFs(afero.NewMemMapFs()))),
		scheduler.WithControl(ctrl),
	)
	if !ctx.Initialize() {
		t.Fatal("Initialize() failed")
	}
	ctx.Enable(true)

	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")

	if ctrl.History.Len() != 1 {
		t.Fatalf("expected 1 history event, got %d", ctrl.History.Len())
	}
	snap := ctrl.Metrics.GetSnapshot()
	if snap["registrations.total"] != int64(1) {
		t.Errorf("expected registrations.total=1, got %v", snap["registrations.total"])
	}
	if snap["topology.total_cores"] != 24 {
		t.Errorf("expected topology.total_cores=24, got %v", snap["topology.total_cores"])
	}
}

func TestConcurrentRegistration(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var h scheduler.ThreadHandle
			ctx.RegisterThread(&h, "AudioOutputThread")
		}()
	}
	wg.Wait()

	if got := backend.AffinityCount(); got != 16 {
		t.Fatalf("expected 16 affinity calls, got %d", got)
	}
}

func TestTurboRoundTripLeavesNoResidue(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	ctx.SetTurboMode(api.TurboUltra)
	ctx.SetTurboMode(api.TurboDisabled)

	if backend.OutstandingTimers() != 0 {
		t.Fatalf("ultra round trip must release all timer requests, got %d outstanding", backend.OutstandingTimers())
	}
	if backend.LastProcessMode() != api.TurboDisabled {
		t.Errorf("ultra round trip must restore the process priority, got %s", backend.LastProcessMode())
	}
}

func TestShutdownForcesDisabled(t *testing.T) {
	ctx, backend := newTestContext(t, 24)

	ctx.SetTurboMode(api.TurboUltra)
	ctx.Shutdown()

	if ctx.IsEnabled() {
		t.Fatal("shutdown must disable the scheduler")
	}
	if ctx.GetTurboMode() != api.TurboDisabled {
		t.Fatalf("shutdown must force disabled mode, got %s", ctx.GetTurboMode())
	}
	if backend.OutstandingTimers() != 0 {
		t.Fatalf("shutdown must leave zero outstanding timer requests, got %d", backend.OutstandingTimers())
	}

	// Registration becomes a no-op after shutdown.
	before := backend.AffinityCount()
	var h scheduler.ThreadHandle
	ctx.RegisterThread(&h, "AudioOutputThread")
	if backend.AffinityCount() != before {
		t.Error("registration after shutdown must be a no-op")
	}
}

func TestPerfFlags(t *testing.T) {
	ctx, _ := newTestContext(t, 8)
	perf := ctx.Perf()

	if perf.ShouldSkipUI() {
		t.Fatal("flags must start clear")
	}
	perf.SetGameRunning(true)
	perf.SetSkipHeavyUI(true)
	if !perf.ShouldSkipUI() {
		t.Fatal("expected UI shedding once game is running")
	}
	perf.SetGameRunning(false)
	if perf.ShouldSkipUI() {
		t.Fatal("UI shedding must stop with the game")
	}
}
