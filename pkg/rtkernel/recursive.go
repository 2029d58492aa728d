// Copyright 2018 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rtkernel

import (
	"sync"
	"time"
)

// RecursiveMutex is the kernel's native recursive mutex primitive
// (mutex_recursive_create/_take/_give in the source). The owning task may
// take it repeatedly without blocking itself; each take must be matched by
// a give, LIFO, before another task can take it.
//
// Ownership is tracked by goroutine identity (see goid.go), the same
// substitute this package uses everywhere it needs to answer "which task is
// this" without an explicit handle in scope.
type RecursiveMutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner uint64
	held  bool
	depth int
}

// NewRecursiveMutex creates a recursive kernel mutex.
func NewRecursiveMutex() *RecursiveMutex {
	m := &RecursiveMutex{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Take acquires the mutex for the calling task, nesting if the caller
// already holds it. It honors the same Timeout semantics as Sem.Take.
func (m *RecursiveMutex) Take(timeout Timeout) bool {
	gid := goroutineID()
	switch timeout {
	case Poll:
		return m.tryTakeLocked(gid)
	case Forever:
		m.mu.Lock()
		for m.held && m.owner != gid {
			m.cond.Wait()
		}
		m.acquireLocked(gid)
		m.mu.Unlock()
		return true
	default:
		return m.takeWithin(gid, timeout.Duration())
	}
}

func (m *RecursiveMutex) tryTakeLocked(gid uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held && m.owner != gid {
		return false
	}
	m.acquireLocked(gid)
	return true
}

// acquireLocked requires m.mu held and the caller to have already verified
// the mutex is either free or owned by gid.
func (m *RecursiveMutex) acquireLocked(gid uint64) {
	m.held = true
	m.owner = gid
	m.depth++
}

func (m *RecursiveMutex) takeWithin(gid uint64, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if m.tryTakeLocked(gid) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// Give releases one level of nesting; the mutex becomes free for other
// tasks once depth returns to zero. A Give from a task other than the
// current owner is ignored.
func (m *RecursiveMutex) Give() {
	gid := goroutineID()
	m.mu.Lock()
	if m.held && m.owner != gid {
		m.mu.Unlock()
		return
	}
	m.depth--
	if m.depth <= 0 {
		m.depth = 0
		m.held = false
		m.owner = 0
	}
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Delete releases kernel resources backing the mutex; nothing to free
// explicitly in this port.
func (m *RecursiveMutex) Delete() {}
