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

import "sync"

// critical stands in for the source's taskENTER_CRITICAL/taskEXIT_CRITICAL
// pair, which disables interrupts on the running core so that nothing else
// in the system observes the kernel mid-mutation. This port has no
// interrupts to disable, so a single process-wide lock is the substitute:
// everything that would run inside a critical section in the source runs
// while holding it here, and nothing else ever takes it, which is enough to
// give the same mutual-exclusion guarantee the source relies on for
// static-mutex promotion.
var critical sync.Mutex

// EnterCritical blocks all concurrent callers of ExitCritical/EnterCritical
// out of the protected region. Sections guarded by it must be short: a
// genuine RTOS critical section keeps the whole system paused for its
// duration, and holding this lock while blocking on anything else
// reintroduces that same global stall indefinitely.
func EnterCritical() {
	critical.Lock()
}

// ExitCritical ends the region started by the matching EnterCritical.
func ExitCritical() {
	critical.Unlock()
}

// WithCritical runs fn with the critical section held and releases it
// before returning, even if fn panics.
func WithCritical(fn func()) {
	EnterCritical()
	defer ExitCritical()
	fn()
}
