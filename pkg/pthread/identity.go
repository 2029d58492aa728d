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
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

// Self returns the calling thread's own descriptor.
//
// §9 records the source's defect here: a failed registry-mutex take is
// reported by inverting a truth value and then returning EAGAIN cast to a
// handle, which upper layers could mistake for a real pointer. This port
// never does that: on any failure Self returns a nil *Thread alongside a
// real error, so there is no non-pointer value that could be read back as
// a handle.
func Self() (*Thread, error) {
	self := rtkernel.Current()
	if self == nil {
		return nil, errInvalid("self: not running as a pthread-managed task")
	}
	var found *Thread
	err := withRegistryLocked(func() error {
		found = findThreadByTaskLocked(self)
		if found == nil {
			return errInvalid("self: descriptor not found for current task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Equal reports whether a and b name the same thread. Handles are pointer
// identity in this port, so this is exactly bitwise equality of the
// addresses, as §4.C specifies.
func Equal(a, b *Thread) bool {
	return a == b
}

// Yield requests a rescheduling hint from the kernel. It always succeeds.
func Yield() {
	rtkernel.Yield()
}

// Cancel is unimplemented, matching §1's Non-goals and §4.C's "cancel()
// and once() are unimplemented; cancel returns ENOSYS".
func Cancel(*Thread) error {
	return errUnsupported("cancel is not implemented")
}
