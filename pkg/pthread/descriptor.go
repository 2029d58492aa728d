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

package pthread

import "github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"

// state is a thread descriptor's lifecycle stage.
type state int

const (
	// stateRun is set on successful create and remains until the
	// trampoline's exit protocol runs.
	stateRun state = iota
	// stateExited means the task finished but no joiner had registered
	// itself yet; a future join finds the descriptor here and reclaims
	// it inline.
	stateExited
)

// Thread is a thread descriptor: one per live thread, and the value whose
// address callers hold as their opaque thread handle — matching §3's "the
// opaque thread handle exposed to callers is the address of the
// descriptor". Every field here is read or written only while the registry
// mutex is held; Thread carries no mutex of its own.
//
// listItem is embedded by value, not referenced, precisely per §9's
// resolution of the owner/item cyclic reference: the item's lifetime is the
// descriptor's lifetime, so composition replaces what would otherwise be a
// pointer cycle.
type Thread struct {
	task *rtkernel.Task

	state    state
	detached bool
	joiner   *rtkernel.Task

	listItem rtkernel.Item
}

// Task returns the kernel task this descriptor is tracking. It exists for
// registry bookkeeping and diagnostics; ordinary callers never need it.
func (t *Thread) Task() *rtkernel.Task { return t.task }
