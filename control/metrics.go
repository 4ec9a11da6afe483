// File: control/metrics.go
// Runtime metrics collector for scheduler monitoring.
// License: Apache-2.0

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds counters and gauges in a thread-safe map with
// dynamic registration.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Inc increments an integer metric, creating it at zero if absent.
func (mr *MetricsRegistry) Inc(key string) {
	mr.mu.Lock()
	n, _ := mr.metrics[key].(int64)
	mr.metrics[key] = n + 1
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns a copy of the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
