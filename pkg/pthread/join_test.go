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
	"testing"
	"time"
)

func TestSelfJoinDeadlocks(t *testing.T) {
	result := make(chan error, 1)
	_, err := Create(nil, func(any) {
		self, err := Self()
		if err != nil {
			result <- err
			return
		}
		result <- Join(self)
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case joinErr := <-result:
		if Errno(joinErr) != syscall.EDEADLK {
			t.Errorf("self-join: got errno = %v, want EDEADLK", Errno(joinErr))
		}
	case <-time.After(time.Second):
		t.Fatalf("child never reported a join result")
	}
}

func TestDoubleJoinReturnsEINVAL(t *testing.T) {
	// Both contending joiners must themselves be pthread-managed tasks:
	// join's identity checks (self-join, mutual-join) key off the
	// calling task's kernel identity, which only a Create'd thread has.
	// This mirrors the source, where pthread_join is only ever called
	// from a task the RTOS itself scheduled, never from un-managed code.
	block := make(chan struct{})
	child, err := Create(nil, func(any) {
		<-block
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	aResult := make(chan error, 1)
	aStarted := make(chan struct{})
	_, err = Create(nil, func(any) {
		close(aStarted)
		aResult <- Join(child)
	}, nil)
	if err != nil {
		t.Fatalf("Create (task A): %v", err)
	}
	<-aStarted
	// Give task A a chance to register itself as the joiner before B
	// attempts to join the same handle.
	time.Sleep(20 * time.Millisecond)

	bResult := make(chan error, 1)
	bStarted := make(chan struct{})
	_, err = Create(nil, func(any) {
		close(bStarted)
		bResult <- Join(child)
	}, nil)
	if err != nil {
		t.Fatalf("Create (task B): %v", err)
	}
	<-bStarted

	select {
	case bErr := <-bResult:
		if Errno(bErr) != syscall.EINVAL {
			t.Errorf("second join: got errno = %v, want EINVAL", Errno(bErr))
		}
	case <-time.After(time.Second):
		t.Fatalf("task B's join never returned")
	}

	close(block)
	select {
	case err := <-aResult:
		if err != nil {
			t.Errorf("task A's join: got err = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("task A's join never returned")
	}
}

func TestJoinUnknownHandleReturnsESRCH(t *testing.T) {
	bogus := &Thread{}
	if err := Join(bogus); Errno(err) != syscall.ESRCH {
		t.Errorf("join of unregistered handle: got errno = %v, want ESRCH", Errno(err))
	}
}
