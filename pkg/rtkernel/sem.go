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
	"context"

	"golang.org/x/sync/semaphore"
)

// Sem is a binary or counting semaphore, backed by
// golang.org/x/sync/semaphore.Weighted the way the source's sem_t is backed
// by the RTOS's native semaphore. It implements both
// binary_mutex_create_static/mutex_create (capacity 1) and a general
// counting semaphore, since the kernel adapter surface in §4.A exposes both
// through the same Take/Give pair.
type Sem struct {
	w *semaphore.Weighted
}

// NewBinary creates a dynamically-allocated binary semaphore, equivalent to
// the source's mutex_create().
func NewBinary() *Sem {
	return &Sem{w: semaphore.NewWeighted(1)}
}

// NewBinaryStatic creates a binary semaphore meant to exist before any
// heap-backed allocation is needed — the registry mutex, in this shim. The
// underlying semaphore.Weighted value itself doesn't distinguish static
// from dynamic allocation, but the separate constructor documents the call
// site's intent, matching binary_mutex_create_static(storage) in the
// kernel adapter surface.
func NewBinaryStatic() *Sem {
	return &Sem{w: semaphore.NewWeighted(1)}
}

// NewCounting creates a counting semaphore with the given capacity.
func NewCounting(capacity int64) *Sem {
	return &Sem{w: semaphore.NewWeighted(capacity)}
}

// Take acquires one unit of the semaphore, blocking according to timeout:
// Forever blocks indefinitely, Poll never blocks, and any other value
// blocks for at most that many ticks. It reports whether the unit was
// acquired.
func (s *Sem) Take(timeout Timeout) bool {
	switch timeout {
	case Poll:
		return s.w.TryAcquire(1)
	case Forever:
		if err := s.w.Acquire(context.Background(), 1); err != nil {
			return false
		}
		return true
	default:
		ctx, cancel := context.WithTimeout(context.Background(), timeout.Duration())
		defer cancel()
		return s.w.Acquire(ctx, 1) == nil
	}
}

// Give releases one unit of the semaphore.
func (s *Sem) Give() {
	s.w.Release(1)
}

// Delete releases the kernel resources backing the semaphore. There is
// nothing to explicitly free in this port (semaphore.Weighted is garbage
// collected), but Delete is kept as a named call so call sites read the
// same way sem_delete(handle) does in the source.
func (s *Sem) Delete() {}
