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

// Package pthread implements the POSIX-style thread and mutex API on top of
// pkg/rtkernel: thread create/join/detach, identity, and normal/recursive
// mutexes including lazy static promotion. It is the only package besides
// rtkernel itself that holds any global state, and that state is exactly
// the registry described in §3/§4.B — everything else here is stateless
// dispatch over it.
package pthread

import (
	"syscall"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/rterror"
)

func errNotFound(note string) error {
	return rterror.New(rterror.NotFound, syscall.ESRCH, note)
}

func errInvalid(note string) error {
	return rterror.New(rterror.Invalid, syscall.EINVAL, note)
}

func errDeadlock(note string) error {
	return rterror.New(rterror.WouldDeadlock, syscall.EDEADLK, note)
}

func errResourceExhausted(errno syscall.Errno, note string) error {
	return rterror.New(rterror.ResourceExhausted, errno, note)
}

func errBusy(note string) error {
	return rterror.New(rterror.Busy, syscall.EBUSY, note)
}

func errUnsupported(note string) error {
	return rterror.New(rterror.Unsupported, syscall.ENOSYS, note)
}

func errInternal(errno syscall.Errno, note string) error {
	return rterror.New(rterror.Internal, errno, note)
}

// Errno extracts the POSIX error code a caller of this package's API should
// report, for callers that want a bare syscall.Errno instead of the richer
// error value (e.g. a C-shaped wrapper layered on top of this package).
func Errno(err error) syscall.Errno {
	return rterror.Errno(err)
}
