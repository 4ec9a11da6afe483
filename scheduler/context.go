// File: scheduler/context.go
// Package scheduler composes topology detection, thread classification,
// affinity planning and the platform backend into the process-wide
// scheduling hint context.
// License: Apache-2.0
//
// Registration is the hot path: it runs once per worker thread, possibly
// from many threads at once, and must never block on anything beyond the
// native calls themselves. The enabled flag and turbo mode are atomics; the
// topology is immutable after Initialize; the remaining knobs tolerate
// slightly stale reads but never torn ones.

package scheduler

import (
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
	"github.com/emucore/hostsched/classify"
	"github.com/emucore/hostsched/control"
	"github.com/emucore/hostsched/plan"
	"github.com/emucore/hostsched/platform"
	"github.com/emucore/hostsched/topology"
)

// defaultAffinityMultiplier seeds the ultra-mode expansion factor when the
// caller never set one.
const defaultAffinityMultiplier = 1.5

// Context is the process-wide scheduling hint state. Create one per process
// and share it by reference with every thread-spawning site.
type Context struct {
	log      *zap.Logger
	detector *topology.Detector
	backend  api.Backend
	control  *control.Control

	totalCores int // 0 = ask the runtime

	enabled     atomic.Bool
	initialized atomic.Bool
	mode        atomic.Int32
	modeSeq     atomic.Uint64
	gpuReserved atomic.Int32
	multiplier  atomic.Uint64 // Float64bits; 0 means unset

	mu        sync.Mutex // serializes Initialize, mode transitions, Shutdown
	topo      api.CoreTopology
	optimizer processOptimizer

	perf PerfFlags
}

// New creates a Context. The context starts uninitialized and disabled;
// call Initialize, then Enable(true).
func New(opts ...Option) *Context {
	c := &Context{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.backend == nil {
		c.backend = platform.New(c.log)
	}
	if c.detector == nil {
		c.detector = topology.NewDetector(topology.WithLogger(c.log))
	}
	c.optimizer = processOptimizer{backend: c.backend, log: c.log}
	return c
}

// Initialize detects the host topology and leaves the scheduler disabled.
// It returns false only on an unexpected internal failure, after which every
// other call on the context remains a safe no-op.
func (c *Context) Initialize() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("scheduler initialization panicked", zap.Any("panic", r))
			ok = false
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	topo := c.detector.Detect(c.totalCores)
	if err := topo.Validate(); err != nil {
		c.log.Error("detected topology is invalid", zap.Error(err))
		return false
	}
	c.topo = topo
	c.initialized.Store(true)
	c.enabled.Store(false)
	c.mode.Store(int32(api.TurboDisabled))

	if c.control != nil {
		c.control.SetTopology(topo)
	}
	c.log.Info("host thread scheduler initialized",
		zap.String("backend", c.backend.Name()),
		zap.Int("total_cores", topo.TotalCores),
		zap.Int("performance_cores", len(topo.Performance)),
		zap.Int("efficiency_cores", len(topo.Efficiency)))
	return true
}

// Shutdown forces TurboDisabled, reverses all process-level side effects and
// disables the scheduler. Registration calls become no-ops afterwards.
func (c *Context) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized.Load() {
		return
	}
	from := api.TurboMode(c.mode.Load())
	if from != api.TurboDisabled {
		c.optimizer.transition(from, api.TurboDisabled)
		c.mode.Store(int32(api.TurboDisabled))
		c.modeSeq.Add(1)
	} else {
		c.optimizer.release()
	}
	c.enabled.Store(false)
	c.log.Info("host thread scheduler shut down")
}

// Enable switches the scheduler on or off. It has no effect before a
// successful Initialize.
func (c *Context) Enable(enabled bool) {
	if !c.initialized.Load() {
		return
	}
	c.enabled.Store(enabled)
	c.log.Info("host thread scheduler toggled", zap.Bool("enabled", enabled))
}

// IsEnabled reports whether registration calls currently apply hints.
func (c *Context) IsEnabled() bool {
	return c.enabled.Load()
}

// SetTurboMode transitions to the given mode, reversing the previous mode's
// process-level effects first. Any direct transition is permitted. Per-thread
// memos are invalidated lazily: threads re-apply on their next registration.
func (c *Context) SetTurboMode(mode api.TurboMode) {
	if !c.initialized.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	from := api.TurboMode(c.mode.Load())
	if from == mode {
		return
	}
	c.optimizer.transition(from, mode)
	c.mode.Store(int32(mode))
	c.modeSeq.Add(1)

	if mode == api.TurboUltra && c.multiplier.Load() == 0 {
		c.storeMultiplier(defaultAffinityMultiplier)
	}
	if c.control != nil {
		c.control.RecordModeChange(from, mode)
	}
}

// GetTurboMode returns the current mode.
func (c *Context) GetTurboMode() api.TurboMode {
	return api.TurboMode(c.mode.Load())
}

// RegisterThread classifies the calling thread by name and applies affinity
// and priority hints for the resulting role. Call it once near the start of
// the worker, with the goroutine locked to its OS thread.
func (c *Context) RegisterThread(h *ThreadHandle, name string) {
	c.registerRole(h, name, classify.Classify(name))
}

// RegisterThreadWithRole is RegisterThread with classification bypassed.
func (c *Context) RegisterThreadWithRole(h *ThreadHandle, name string, role api.Role) {
	c.registerRole(h, name, role)
}

func (c *Context) registerRole(h *ThreadHandle, name string, role api.Role) {
	if h == nil || !c.enabled.Load() {
		return
	}
	if role == api.RoleUnknown {
		// Unclassifiable threads are never touched.
		return
	}

	mode := api.TurboMode(c.mode.Load())
	seq := c.modeSeq.Load()
	if h.applied && h.lastRole == role && h.modeSeq == seq {
		return
	}

	cores := plan.Plan(role, mode, c.topo, int(c.gpuReserved.Load()))
	c.apply(name, role, mode, cores)

	h.lastRole = role
	h.applied = true
	h.modeSeq = seq
}

// ApplyGuestThreadOptimization forwards the guest kernel's own scheduling
// intent for the calling thread. It acts only under TurboUltra; in every
// other mode it is a no-op for any arguments.
func (c *Context) ApplyGuestThreadOptimization(h *ThreadHandle, name string, guestPriority int32, guestAffinity uint32) {
	if h == nil || !c.enabled.Load() {
		return
	}
	if api.TurboMode(c.mode.Load()) != api.TurboUltra {
		return
	}

	cores := plan.GuestPlan(guestAffinity, c.GetAffinityMultiplier(), c.topo)
	tier := plan.GuestPriorityTier(guestPriority)
	role := roleForTier(tier)
	c.apply(name, role, api.TurboUltra, cores)

	h.lastRole = role
	h.applied = true
	h.modeSeq = c.modeSeq.Load()
}

// apply performs the native calls and reports them. Failures are logged and
// swallowed: a refused hint must never affect the caller.
func (c *Context) apply(name string, role api.Role, mode api.TurboMode, cores []int) {
	if err := c.backend.ApplyAffinity(cores); err != nil {
		c.log.Warn("affinity hint refused",
			zap.String("thread", name), zap.Stringer("role", role), zap.Error(err))
	}
	if err := c.backend.ApplyPriority(role, mode); err != nil {
		c.log.Warn("priority hint refused",
			zap.String("thread", name), zap.Stringer("role", role), zap.Error(err))
	}
	if c.control != nil {
		c.control.RecordRegistration(name, role, mode, cores)
	}
	c.log.Debug("thread registered",
		zap.String("thread", name),
		zap.Stringer("role", role),
		zap.Stringer("mode", mode),
		zap.Ints("cores", cores))
}

// roleForTier maps a guest priority tier onto the role whose native priority
// mapping matches it, preserving tier ordering on both platforms.
func roleForTier(tier plan.PriorityTier) api.Role {
	switch tier {
	case plan.TierTimeCritical:
		return api.RoleAudio
	case plan.TierHigh:
		return api.RoleMainRender
	case plan.TierElevated:
		return api.RoleInput
	default:
		return api.RoleBackground
	}
}

// SetGPUWorkerCores records the renderer's worker-core reservation hint.
// Consulted only in large-system planning; never a hard constraint.
func (c *Context) SetGPUWorkerCores(n int) {
	if n < 0 {
		n = 0
	}
	c.gpuReserved.Store(int32(n))
}

// GetGPUWorkerCores returns the current reservation hint.
func (c *Context) GetGPUWorkerCores() int {
	return int(c.gpuReserved.Load())
}

// SetAffinityMultiplier sets the ultra-mode core expansion factor. Values
// below 1.0 are clamped up.
func (c *Context) SetAffinityMultiplier(m float64) {
	if m < 1.0 || math.IsNaN(m) {
		m = 1.0
	}
	c.storeMultiplier(m)
}

// GetAffinityMultiplier returns the expansion factor, 1.0 when unset.
func (c *Context) GetAffinityMultiplier() float64 {
	bits := c.multiplier.Load()
	if bits == 0 {
		return 1.0
	}
	return math.Float64frombits(bits)
}

func (c *Context) storeMultiplier(m float64) {
	if m < 1.0 || math.IsNaN(m) {
		return
	}
	c.multiplier.Store(math.Float64bits(m))
}

// Topology returns a copy of the detected topology. Zero value before
// Initialize.
func (c *Context) Topology() api.CoreTopology {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.Clone()
}

// Perf exposes the process-wide performance mode flags.
func (c *Context) Perf() *PerfFlags {
	return &c.perf
}
