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
)

func TestAttrSettypeThenGettypeReturnsENOSYS(t *testing.T) {
	var attr Attr
	if err := AttrInit(&attr); err != nil {
		t.Fatalf("AttrInit: %v", err)
	}
	if err := AttrSettype(&attr, Normal); err != nil {
		t.Fatalf("AttrSettype(Normal): %v", err)
	}
	if _, err := AttrGettype(&attr); Errno(err) != syscall.ENOSYS {
		t.Errorf("AttrGettype: got errno = %v, want ENOSYS", Errno(err))
	}
}

func TestAttrSettypeRejectsOutOfRange(t *testing.T) {
	var attr Attr
	AttrInit(&attr)
	if err := AttrSettype(&attr, MutexType(99)); Errno(err) != syscall.EINVAL {
		t.Errorf("AttrSettype(99): got errno = %v, want EINVAL", Errno(err))
	}
}

func TestAttrSettypeBeforeInitFails(t *testing.T) {
	var attr Attr
	if err := AttrSettype(&attr, Recursive); Errno(err) != syscall.EINVAL {
		t.Errorf("AttrSettype before AttrInit: got errno = %v, want EINVAL", Errno(err))
	}
}

func TestDetachIdempotent(t *testing.T) {
	block := make(chan struct{})
	child, err := Create(nil, func(any) {
		<-block
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer close(block)

	if err := Detach(child); err != nil {
		t.Fatalf("first Detach: got err = %v, want nil", err)
	}
	if err := Detach(child); err != nil {
		t.Errorf("second Detach on a still-RUN thread: got err = %v, want nil", err)
	}
}
