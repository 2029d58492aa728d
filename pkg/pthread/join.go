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

// Join blocks until h's thread exits, then reclaims its descriptor. The
// shim never propagates a return value (§1 Non-goals), so there is no
// out-parameter here; callers that need a result must communicate it
// themselves, e.g. through a channel closed over by the entry function.
//
// The condition table below is §4.C's "Join" table, checked in the same
// order under a single registry-mutex critical section.
//
// The caller must itself be a thread started by Create: join keys off the
// calling task's identity, so any other caller gets EINVAL for a handle
// that is still in the registry.
func Join(h *Thread) error {
	self := rtkernel.Current()

	var mustWait bool
	err := withRegistryLocked(func() error {
		th := findThreadLocked(h)
		if th == nil {
			return errNotFound("join: handle not in registry")
		}
		if self == nil {
			return errInvalid("join: caller is not a pthread-managed task")
		}
		if th.joiner != nil {
			return errInvalid("join: a joiner is already armed")
		}
		if th.task == self {
			return errDeadlock("join: thread joining itself")
		}
		if selfTh := findThreadByTaskLocked(self); selfTh != nil && selfTh.joiner == th.task {
			// Mutual join: the target is already blocked joining the
			// caller.
			return errDeadlock("join: mutual join")
		}

		if th.state == stateExited {
			unlinkAndFreeLocked(th)
			return nil
		}

		th.joiner = self
		mustWait = true
		return nil
	})
	if err != nil || !mustWait {
		return err
	}

	self.NotifyWait()

	if err := withRegistryLocked(func() error {
		unlinkAndFreeLocked(h)
		return nil
	}); err != nil {
		return joinReacquireFailed()
	}
	return nil
}

// joinReacquireFailed is what Join returns, as ENOMSG, when re-acquiring
// the registry mutex after a joiner wakes fails (§4.C). withRegistryLocked
// cannot fail in this port (the registry semaphore is a Forever take that
// never errors), so this path is never taken in practice.
func joinReacquireFailed() error {
	err := errInternal(syscall.ENOMSG, "join: registry mutex re-acquire failed after wake")
	log.Warningf("pthread: %s", err)
	return err
}
