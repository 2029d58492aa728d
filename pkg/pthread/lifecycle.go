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

import (
	"syscall"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

// Entry is the user function run on a new thread. Its return value is
// discarded, matching the shim's "always yields a null result" join
// semantics (§1 Non-goals: no return-value propagation through join).
type Entry func(arg any)

// trampolineArg is the {entry, user_arg} pair the source allocates ahead of
// spawn and the trampoline reads on its first action. §9 records the
// source's sizeof(task_arg) bug (it allocates space for a pointer, not the
// struct) as having no analogue here: this is a plain Go struct value, not
// a manually sized allocation.
type trampolineArg struct {
	entry Entry
	arg   any
}

// Create starts a new thread running entry(arg). attr must be nil; any
// non-null attribute is rejected with ENOSYS, matching §4.C's "optional
// attributes (MUST be null; any non-null attribute fails with ENOSYS)" —
// this port's pthread_attr_t has no fields upper layers are expected to
// set for thread creation, only for mutexes, so accepting one here would
// silently ignore it instead of honoring it.
//
// Create also refuses once the registry already holds
// rtkernel.MaxThreads live descriptors, returning EAGAIN without spawning
// anything — the embedded-controller ceiling internal/rtconfig's
// MaxThreads tunable documents, enforced here rather than left as an
// unconsulted number.
func Create(attr any, entry Entry, arg any) (*Thread, error) {
	if attr != nil {
		return nil, errUnsupported("thread attributes are not supported")
	}
	if entry == nil {
		return nil, errInvalid("nil entry function")
	}

	// Claim a registry slot before spawning anything, so that two
	// concurrent Creates racing against a nearly-full registry can't both
	// pass the capacity check and then both insert, overshooting
	// rtkernel.MaxThreads — the ceiling internal/rtconfig's MaxThreads
	// tunable documents.
	if err := withRegistryLocked(func() error {
		if !reserveLocked() {
			return errResourceExhausted(syscall.EAGAIN, "thread registry at capacity")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	targ := &trampolineArg{entry: entry, arg: arg}
	th := &Thread{state: stateRun}

	task := rtkernel.Spawn(rtkernel.DefaultPriority(), 0, "pthread", func(self *rtkernel.Task) {
		trampoline(self, th, targ)
	})
	if task == nil {
		_ = withRegistryLocked(func() error {
			releaseReservationLocked()
			return nil
		})
		return nil, errResourceExhausted(syscall.EAGAIN, "kernel task spawn failed")
	}
	th.task = task

	if err := withRegistryLocked(func() error {
		insertLocked(th)
		return nil
	}); err != nil {
		return nil, err
	}

	task.Notify()
	log.Debugf("pthread: created thread %p (task %s)", th, task.Name())
	return th, nil
}

// trampoline is the kernel-task entry point every created thread runs.
// Steps 1-5 here are exactly §4.C's "Trampoline (child side)" list.
func trampoline(self *rtkernel.Task, th *Thread, targ *trampolineArg) {
	// 1. Wait for the creation notification: the registry already
	// contains th by the time this returns, so self() and an eager join
	// from the parent can never race against creation.
	self.NotifyWait()

	// 2. Run user code. Its return value is discarded.
	targ.entry(targ.arg)

	// 3. The trampoline argument becomes unreachable once this function
	// returns; there's no explicit free step in Go.

	// 4. Exit protocol, under the registry mutex.
	var notifyJoiner *rtkernel.Task
	var selfFree bool
	_ = withRegistryLocked(func() error {
		switch {
		case th.detached:
			unlinkAndFreeLocked(th)
			selfFree = true
		case th.joiner != nil:
			notifyJoiner = th.joiner
		default:
			th.state = stateExited
		}
		return nil
	})
	if notifyJoiner != nil {
		notifyJoiner.Notify()
	}
	if selfFree {
		log.Debugf("pthread: thread %p self-freed on exit (was detached)", th)
	} else {
		log.Debugf("pthread: thread %p finished entry, state recorded", th)
	}

	// 5. Delete self. Must be the final action; nothing below this line
	// may touch th or targ again, since a joiner may already have freed
	// th by the time this runs.
	rtkernel.Delete(self)
}
