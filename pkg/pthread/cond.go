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

// Cond is a condition-variable stub, preserved for link-time compatibility
// with upper layers that reference but do not meaningfully use one — the
// source supplies no-op wait/signal, and §9 directs this port to keep that
// behavior rather than implement real condition variables, which are out
// of scope (§1 Non-goals).
type Cond struct{}

// CondWait does nothing and returns nil. Callers that depend on an actual
// wakeup from CondSignal will hang forever; there is no warning at runtime
// beyond this doc comment, matching the source's behavior exactly.
func CondWait(*Cond, *MutexCell) error {
	return nil
}

// CondSignal does nothing and returns nil.
func CondSignal(*Cond) error {
	return nil
}
