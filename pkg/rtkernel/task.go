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

// Package rtkernel is the kernel adapter (component A): the only package in
// this tree that is allowed to touch the primitives a pre-emptive RTOS
// kernel would expose — tasks, semaphores, recursive mutexes, an intrusive
// list, a critical section, and a tick clock. Every other package in this
// module reaches the underlying concurrency substrate only through here.
//
// Tasks are backed by goroutines: Spawn starts one, and the "kernel task
// handle" it returns is the *Task that goroutine owns. There is no external
// force-delete of a running task, because the source never calls
// task_delete on anything but the current task (self-deletion); Delete
// reflects that by only being meaningful when called by the task itself.
package rtkernel

import (
	"sync"
)

// Task is a kernel task handle. Its address is stable and comparable for
// the lifetime of the task, which is exactly the identity guarantee the
// rest of the shim needs from "task_t".
type Task struct {
	name     string
	priority int

	notifyCh chan struct{}
}

// tasksByGoroutine maps the running goroutine's ID (see goid.go) to the
// *Task it is executing as. The underlying kernel has no equivalent
// bookkeeping to port because C has ambient thread-local storage for
// "current thread"; Go doesn't, so this is the substitute: an identity map
// kept consistent under lock, the same shape as the bidirectional
// task/TID maps task_exec.go's promoteLocked maintains for a thread group.
var tasksByGoroutine sync.Map // map[uint64]*Task

// Spawn starts a new kernel task running fn on its own goroutine at the
// given priority (priority is bookkeeping only — see runqueue.go for how
// it feeds the yield/priority-band diagnostic) with a name used for
// diagnostics and stackBytes as a sizing hint carried through for parity
// with the source (goroutines grow their own stacks). It returns the new
// task's handle immediately; fn begins running concurrently.
//
// Spawn never fails in this port: the source's only spawn failure mode is
// the underlying RTOS running out of static task-control blocks, which
// goroutines have no analogue for. Callers in pkg/pthread still treat a nil
// *Task as the failure signal because the interface must allow for one.
func Spawn(priority int, stackBytes int, name string, fn func(t *Task)) *Task {
	t := &Task{
		name:     name,
		priority: priority,
		notifyCh: make(chan struct{}, 1),
	}
	runQueue.register(t)
	go func() {
		gid := goroutineID()
		tasksByGoroutine.Store(gid, t)
		defer tasksByGoroutine.Delete(gid)
		defer runQueue.unregister(t)
		fn(t)
	}()
	return t
}

// Current returns the Task the calling goroutine is running as, or nil if
// the calling goroutine was not started by Spawn.
func Current() *Task {
	gid := goroutineID()
	v, ok := tasksByGoroutine.Load(gid)
	if !ok {
		return nil
	}
	return v.(*Task)
}

// Delete marks the calling task's exit; it does nothing itself, since the
// task is removed from scheduling bookkeeping by Spawn's deferred cleanup
// once fn returns. In the source this is task_delete(NULL), the exiting task's final act; here it
// is the trampoline's final act before its goroutine returns. Delete on any
// task other than Current is a misuse this port doesn't need to support,
// since nothing in the shim ever calls it that way.
func Delete(t *Task) {
	// The goroutine's own deferred cleanup (in Spawn) does the actual
	// bookkeeping removal once fn returns; Delete exists as an explicit,
	// named step in the exit protocol so the call site in the trampoline
	// reads the same way task_delete(NULL) does in the source, immediately
	// before the goroutine function returns.
}

// Name returns the task's diagnostic name.
func (t *Task) Name() string { return t.name }

// Priority returns the task's scheduling priority.
func (t *Task) Priority() int { return t.priority }

// Notify wakes a task blocked in NotifyWait, or arms a pending wakeup if it
// isn't blocked yet — exactly task_notify_ext's "no-op action, do nothing to
// the value" usage in the source, which only ever uses notifications as a
// binary doorbell.
func (t *Task) Notify() {
	select {
	case t.notifyCh <- struct{}{}:
	default:
		// A notification is already pending; the source's notification
		// value is not accumulated either (E_NOTIFY_ACTION_NONE).
	}
}

// NotifyWait blocks the calling task until Notify is called. It is used at
// exactly two points, matching the source: the creation handshake, and a
// joiner waiting for the exit-protocol notification.
func (t *Task) NotifyWait() {
	<-t.notifyCh
}
