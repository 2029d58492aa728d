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

func TestSpawnCurrentIdentity(t *testing.T) {
	seen := make(chan *Task, 1)
	want := Spawn(5, 0, "test-task", func(self *Task) {
		seen <- Current()
	})
	if want == nil {
		t.Fatalf("Spawn returned nil")
	}

	select {
	case got := <-seen:
		if got != want {
			t.Errorf("Current() inside the task: got %p, want %p", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("spawned task never ran")
	}
}

func TestCurrentNilOutsideTask(t *testing.T) {
	if got := Current(); got != nil {
		t.Errorf("Current() on the test goroutine: got %p, want nil", got)
	}
}

func TestNotifyWaitUnblocksOnNotify(t *testing.T) {
	ready := make(chan struct{})
	woke := make(chan struct{})
	task := Spawn(5, 0, "notify-test", func(self *Task) {
		close(ready)
		self.NotifyWait()
		close(woke)
	})
	<-ready
	time.Sleep(5 * time.Millisecond)
	task.Notify()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatalf("NotifyWait never returned after Notify")
	}
}
