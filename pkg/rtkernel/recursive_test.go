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
	"testing"
	"time"
)

func TestRecursiveMutexNesting(t *testing.T) {
	m := NewRecursiveMutex()
	for i := 0; i < 3; i++ {
		if !m.Take(Poll) {
			t.Fatalf("nested Take(Poll) #%d by owner should succeed", i)
		}
	}

	done := make(chan bool, 1)
	go func() {
		done <- m.Take(Poll)
	}()
	select {
	case ok := <-done:
		if ok {
			t.Errorf("Take(Poll) from a non-owning goroutine should fail while held")
		}
	case <-time.After(time.Second):
		t.Fatalf("Take(Poll) from another goroutine did not return")
	}

	for i := 0; i < 3; i++ {
		m.Give()
	}

	go func() {
		done <- m.Take(Poll)
	}()
	select {
	case ok := <-done:
		if !ok {
			t.Errorf("Take(Poll) after full release should succeed")
		} else {
			m.Give()
		}
	case <-time.After(time.Second):
		t.Fatalf("Take(Poll) after release did not return")
	}
}

func TestRecursiveMutexForeverBlocksThenWakes(t *testing.T) {
	m := NewRecursiveMutex()
	if !m.Take(Poll) {
		t.Fatalf("setup Take should succeed")
	}

	done := make(chan bool, 1)
	go func() {
		done <- m.Take(Forever)
	}()

	time.Sleep(10 * time.Millisecond)
	m.Give()

	select {
	case ok := <-done:
		if !ok {
			t.Errorf("Take(Forever) reported failure")
		}
	case <-time.After(time.Second):
		t.Fatalf("Take(Forever) from another goroutine never woke up")
	}
}
