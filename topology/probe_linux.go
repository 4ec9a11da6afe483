//go:build linux
// +build linux

// File: topology/probe_linux.go
// Linux sysfs probe for hybrid (P/E core) CPU topologies.
// License: Apache-2.0
//
// Intel hybrid parts expose their core types under /sys/devices/cpu_core and
// /sys/devices/cpu_atom as cpulist strings. When both lists are present and
// disjoint they are authoritative; performance cores are additionally ordered
// best-first by cpufreq cpuinfo_max_freq so the turbo tier lands on the
// highest-clocked cores.

package topology

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	sysCoreCPUs   = "/sys/devices/cpu_core/cpus"
	sysAtomCPUs   = "/sys/devices/cpu_atom/cpus"
	sysMaxFreqFmt = "/sys/devices/system/cpu/cpu%d/cpufreq/cpuinfo_max_freq"
)

// probe reads the hybrid core split from sysfs. A nil Hint with nil error
// means the host does not report a hybrid topology.
func (d *Detector) probe(totalCores int) (*Hint, error) {
	perf, err := d.readCPUList(sysCoreCPUs)
	if err != nil {
		// Non-hybrid hosts simply lack the file. Not an error.
		return nil, nil
	}
	eff, err := d.readCPUList(sysAtomCPUs)
	if err != nil {
		// A core list without an atom list is ambiguous; fall back.
		return nil, nil
	}
	if len(perf) == 0 || len(eff) == 0 {
		return nil, nil
	}

	d.orderByMaxFreq(perf)
	return &Hint{Performance: perf, Efficiency: eff}, nil
}

// readCPUList parses a sysfs cpulist file such as "0-15" or "0-3,8-11".
func (d *Detector) readCPUList(path string) ([]int, error) {
	raw, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return parseCPUList(strings.TrimSpace(string(raw)))
}

// orderByMaxFreq sorts core ids by descending cpuinfo_max_freq. Cores whose
// cpufreq entry is unreadable keep their relative order at the tail.
func (d *Detector) orderByMaxFreq(cores []int) {
	freq := make(map[int]int64, len(cores))
	for _, id := range cores {
		raw, err := afero.ReadFile(d.fs, fmt.Sprintf(sysMaxFreqFmt, id))
		if err != nil {
			continue
		}
		khz, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			continue
		}
		freq[id] = khz
	}
	sort.SliceStable(cores, func(i, j int) bool {
		return freq[cores[i]] > freq[cores[j]]
	})
}

// parseCPUList expands a kernel cpulist string into individual core ids.
func parseCPUList(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(lo)
			if err != nil {
				return nil, errors.Wrapf(err, "cpulist range %q", part)
			}
			end, err := strconv.Atoi(hi)
			if err != nil {
				return nil, errors.Wrapf(err, "cpulist range %q", part)
			}
			if end < start {
				return nil, errors.Errorf("cpulist range %q is inverted", part)
			}
			for i := start; i <= end; i++ {
				ids = append(ids, i)
			}
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "cpulist entry %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
