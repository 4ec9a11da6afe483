// File: topology/detect.go
// Package topology derives the host CoreTopology used by the affinity planner.
// License: Apache-2.0
//
// Detection runs once at scheduler initialization. A platform probe is asked
// first; when it cannot cleanly distinguish performance from efficiency cores
// the banded heuristic below is the mandatory fallback. Either way the result
// satisfies api.CoreTopology.Validate.

package topology

import (
	"runtime"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/emucore/hostsched/api"
)

// Hint is an OS-reported performance/efficiency core split. A probe returns
// nil when the platform offers no reliable distinction.
type Hint struct {
	Performance []int // best-first
	Efficiency  []int
}

// Detector resolves the host topology, preferring the OS probe over the
// heuristic. The filesystem is injectable so tests can fake sysfs.
type Detector struct {
	fs  afero.Fs
	log *zap.Logger
}

// Option customizes a Detector.
type Option func(*Detector)

// WithFs overrides the filesystem used by the sysfs probe.
func WithFs(fs afero.Fs) Option {
	return func(d *Detector) { d.fs = fs }
}

// WithLogger sets the detector logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Detector) { d.log = log }
}

// NewDetector creates a Detector with OS defaults.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		fs:  afero.NewOsFs(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect resolves the topology for totalCores logical cores. totalCores <= 0
// falls back to runtime.NumCPU().
func (d *Detector) Detect(totalCores int) api.CoreTopology {
	if totalCores <= 0 {
		totalCores = runtime.NumCPU()
	}
	if totalCores < 1 {
		totalCores = 1
	}

	hint, err := d.probe(totalCores)
	if err != nil {
		d.log.Debug("topology probe failed, using heuristic", zap.Error(err))
	}
	if hint != nil {
		topo := FromHint(totalCores, *hint)
		if topo.Validate() == nil {
			d.log.Info("topology from OS probe",
				zap.Int("total", topo.TotalCores),
				zap.Int("performance", len(topo.Performance)),
				zap.Int("efficiency", len(topo.Efficiency)))
			return topo
		}
		d.log.Warn("probe hint violated topology invariants, using heuristic")
	}

	topo := Heuristic(totalCores)
	d.log.Info("topology from heuristic",
		zap.Int("total", topo.TotalCores),
		zap.Int("performance", len(topo.Performance)),
		zap.Int("efficiency", len(topo.Efficiency)),
		zap.Int("turbo", len(topo.Turbo)),
		zap.Int("ultra", len(topo.Ultra)))
	return topo
}

// Heuristic derives a topology from the logical core count alone. Bands:
//
//	== 24   known high-end hybrid desktop part: 16 P + 8 E, turbo 6, ultra 12
//	16..23  4 efficiency cores reserved, turbo 6, ultra 10 (capped)
//	12..15  performance = floor(2/3 total), turbo = half of P, ultra = all P
//	 < 12   everything performance, turbo = first half, ultra = all
//
// Within a band more cores never yields fewer performance cores. Crossing
// into a hybrid band intentionally trades raw performance-core count for a
// dedicated efficiency tier.
func Heuristic(totalCores int) api.CoreTopology {
	if totalCores < 1 {
		totalCores = 1
	}
	topo := api.CoreTopology{TotalCores: totalCores}

	switch {
	case totalCores == 24:
		topo.Performance = coreRange(0, 16)
		topo.Efficiency = coreRange(16, 24)
		topo.Turbo = coreRange(0, 6)
		topo.Ultra = coreRange(0, 12)

	case totalCores >= 16:
		perfCount := totalCores - 4
		topo.Performance = coreRange(0, perfCount)
		topo.Efficiency = coreRange(perfCount, totalCores)
		topo.Turbo = coreRange(0, minInt(6, perfCount))
		topo.Ultra = coreRange(0, minInt(10, perfCount))

	case totalCores >= 12:
		perfCount := totalCores * 2 / 3
		topo.Performance = coreRange(0, perfCount)
		topo.Efficiency = coreRange(perfCount, totalCores)
		topo.Turbo = coreRange(0, perfCount/2)
		topo.Ultra = coreRange(0, perfCount)

	default:
		topo.Performance = coreRange(0, totalCores)
		topo.Turbo = coreRange(0, totalCores/2)
		topo.Ultra = coreRange(0, totalCores)
	}
	return topo
}

// FromHint builds a topology from an OS-reported P/E split, deriving the
// turbo and ultra tiers from the hinted performance list: turbo is the best
// half capped at 6, ultra is every performance core on parts up to 12 P-cores
// and the best three quarters above that, never smaller than turbo.
func FromHint(totalCores int, hint Hint) api.CoreTopology {
	topo := api.CoreTopology{
		TotalCores:  totalCores,
		Performance: filterCores(hint.Performance, totalCores),
		Efficiency:  filterCores(hint.Efficiency, totalCores),
	}
	p := len(topo.Performance)
	if p == 0 {
		return Heuristic(totalCores)
	}

	turboCount := minInt(6, (p+1)/2)
	ultraCount := p
	if p > 12 {
		ultraCount = maxInt(turboCount, p*3/4)
	}
	topo.Turbo = append([]int(nil), topo.Performance[:turboCount]...)
	topo.Ultra = append([]int(nil), topo.Performance[:ultraCount]...)
	return topo
}

// coreRange returns ids [lo, hi).
func coreRange(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	ids := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		ids = append(ids, i)
	}
	return ids
}

// filterCores drops out-of-range and duplicate ids, preserving order.
func filterCores(ids []int, totalCores int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= totalCores {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
