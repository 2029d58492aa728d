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

import "runtime"

// Yield requests a rescheduling hint from the kernel: a delay of zero
// ticks, which the source documents as "requeue at end of own priority
// band". The actual CPU hand-off is delegated to the Go runtime scheduler
// (runtime.Gosched); the run-queue diagnostic is updated to reflect the
// band requeue so a concurrent `ps` dump shows the same ordering a real
// RTOS's ready list would.
func Yield() {
	if t := Current(); t != nil {
		runQueue.requeue(t)
	}
	runtime.Gosched()
}
