// File: scheduler/thread.go
// Per-thread registration record.
// License: Apache-2.0

package scheduler

import "github.com/emucore/hostsched/api"

// ThreadHandle memoizes the last scheduling hint applied to one worker
// thread, suppressing redundant native calls on repeated registration. Each
// worker owns exactly one handle; it is not safe for concurrent use by
// multiple threads, which is by construction never needed.
//
// The handle is an explicit struct rather than hidden thread-local state so
// tests can reset it deterministically.
type ThreadHandle struct {
	lastRole api.Role
	applied  bool
	modeSeq  uint64
}

// LastRole returns the role most recently applied through this handle.
func (h *ThreadHandle) LastRole() api.Role { return h.lastRole }

// Applied reports whether a hint has been applied through this handle.
func (h *ThreadHandle) Applied() bool { return h.applied }

// Reset clears the memo so the next registration re-applies hints.
func (h *ThreadHandle) Reset() {
	h.lastRole = api.RoleUnknown
	h.applied = false
	h.modeSeq = 0
}
