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
	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/internal/rtconfig"
)

// defaultPriority and maxThreads hold the process-wide tunables Boot installs,
// read by pkg/pthread when it has no per-call override to honor.
var (
	defaultPriority = 8
	maxThreads      = 256
)

// Boot applies a loaded rtconfig.Config to the kernel adapter: it sets the
// tick length used by every Timeout conversion in this package and starts
// the tick source, and it records the default priority and thread ceiling
// for pkg/pthread to read back via DefaultPriority and MaxThreads. It must
// be called once at process start, before any task is spawned or any timed
// operation is attempted, the same ordering constraint the source's
// kernel-init step has over task creation.
func Boot(cfg *rtconfig.Config) {
	if cfg == nil {
		cfg = rtconfig.Default()
	}
	SetTickDuration(cfg.Kernel.TickDuration())
	defaultPriority = cfg.Kernel.DefaultPriority
	maxThreads = cfg.Kernel.MaxThreads
	StartTickSource()
	log.Infof("rtkernel: booted tick=%s default_priority=%d max_threads=%d",
		TickDuration(), defaultPriority, maxThreads)
}

// DefaultPriority returns the priority a task is created at when the caller
// passes no explicit override.
func DefaultPriority() int { return defaultPriority }

// MaxThreads returns the configured ceiling on live thread descriptors.
func MaxThreads() int { return maxThreads }

// AllocHeap and FreeHeap stand in for the source's heap_alloc(size) and
// heap_free(ptr) kernel capability. The source wraps the RTOS's static or
// first-fit heap because C has no garbage collector; this port has no
// equivalent need; AllocHeap exists only so call sites that want to mirror
// the source's explicit allocation step have something to call; it always
// succeeds and the returned slice is reclaimed by the Go garbage collector
// like everything else.
func AllocHeap(size int) []byte {
	if size <= 0 {
		return nil
	}
	return make([]byte, size)
}

// FreeHeap is a no-op kept for symmetry with AllocHeap; nothing in this
// port calls it on a schedule other than "never", since the garbage
// collector owns reclamation.
func FreeHeap(_ []byte) {}
