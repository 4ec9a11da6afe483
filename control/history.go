// File: control/history.go
// Bounded history of recent thread registrations.
// License: Apache-2.0

package control

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/emucore/hostsched/api"
)

// RegistrationEvent is one applied scheduling hint.
type RegistrationEvent struct {
	Name  string
	Role  api.Role
	Mode  api.TurboMode
	Cores []int
	At    time.Time
}

// History keeps the most recent registration events in a ring. Oldest events
// are evicted once the capacity is reached.
type History struct {
	mu  sync.Mutex
	q   *queue.Queue
	cap int
}

// NewHistory creates a history bounded to capacity events. capacity <= 0
// defaults to 64.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 64
	}
	return &History{
		q:   queue.New(),
		cap: capacity,
	}
}

// Add appends an event, evicting the oldest when full.
func (h *History) Add(ev RegistrationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for h.q.Length() >= h.cap {
		h.q.Remove()
	}
	h.q.Add(ev)
}

// Recent returns the stored events, oldest first.
func (h *History) Recent() []RegistrationEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]RegistrationEvent, 0, h.q.Length())
	for i := 0; i < h.q.Length(); i++ {
		if ev, ok := h.q.Get(i).(RegistrationEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

// Len reports the number of stored events.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.q.Length()
}
