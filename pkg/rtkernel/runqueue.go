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
	"sync"
	"sync/atomic"

	"github.com/google/btree"
)

// runqEntry is one live task's position in the priority-ordered run-queue
// diagnostic. Real CPU scheduling is left entirely to the Go runtime; this
// structure only tracks the ordering a "ps"-style dump or a yield(0) would
// observe, exactly as §4.A of the design describes: a priority-band
// requeue the kernel adapter tracks for bookkeeping, not a scheduler this
// package actually drives.
type runqEntry struct {
	priority int
	seq      uint64
	task     *Task
}

// Less implements btree.Item: lower priority number sorts first (the
// source's TASK_PRIORITY_DEFAULT convention, where smaller means scheduled
// sooner, as in FreeRTOS), and within a priority band, insertion order
// (seq) breaks ties so that a yield requeues the caller behind every other
// task in its band without disturbing their relative order.
func (e *runqEntry) Less(than btree.Item) bool {
	o := than.(*runqEntry)
	if e.priority != o.priority {
		return e.priority < o.priority
	}
	return e.seq < o.seq
}

// runQueue is the process-wide diagnostic run-queue. It is a separate
// concern from pkg/pthread's thread registry: this tracks kernel tasks by
// priority for scheduling diagnostics, while the registry tracks thread
// descriptors for join/detach semantics. A kernel task may exist here
// without ever being wrapped in a pthread descriptor (none are, in this
// module, but the separation mirrors the source's own layering between the
// RTOS task and the pthread bookkeeping built atop it).
type runQueueT struct {
	mu   sync.Mutex
	tree *btree.BTree
	seq  atomic.Uint64

	entries map[*Task]*runqEntry
}

var runQueue = &runQueueT{
	tree:    btree.New(8),
	entries: make(map[*Task]*runqEntry),
}

func (q *runQueueT) register(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := &runqEntry{priority: t.priority, seq: q.seq.Add(1), task: t}
	q.entries[t] = e
	q.tree.ReplaceOrInsert(e)
}

func (q *runQueueT) unregister(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e, ok := q.entries[t]; ok {
		q.tree.Delete(e)
		delete(q.entries, t)
	}
}

// requeue moves t to the end of its own priority band, implementing the
// "ticks=0 means requeue at end of own priority band" semantics that
// yield(0) carries in the source.
func (q *runQueueT) requeue(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[t]
	if !ok {
		return
	}
	q.tree.Delete(e)
	e.seq = q.seq.Add(1)
	q.tree.ReplaceOrInsert(e)
}

// TaskInfo is a read-only snapshot of one task's run-queue position, for
// diagnostics (the `ps` subcommand of cmd/pthreadctl).
type TaskInfo struct {
	Name     string
	Priority int
}

// Snapshot returns all live kernel tasks ordered by priority band, lowest
// (highest-priority) band first, in band order.
func Snapshot() []TaskInfo {
	runQueue.mu.Lock()
	defer runQueue.mu.Unlock()
	out := make([]TaskInfo, 0, runQueue.tree.Len())
	runQueue.tree.Ascend(func(i btree.Item) bool {
		e := i.(*runqEntry)
		out = append(out, TaskInfo{Name: e.task.name, Priority: e.task.priority})
		return true
	})
	return out
}
