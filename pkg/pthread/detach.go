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

// Detach marks h as detached: its descriptor will be reclaimed by the
// exiting thread itself rather than by a joiner. Legal in any state.
//
// If h has already transitioned to EXITED with no joiner ever having
// registered, this reclaims the descriptor immediately instead of leaving
// it to rot — §9's documented fix for the source's latent leak, where
// detach on an already-EXITED, never-joined thread never freed anything.
func Detach(h *Thread) error {
	return withRegistryLocked(func() error {
		th := findThreadLocked(h)
		if th == nil {
			return errNotFound("detach: handle not in registry")
		}
		th.detached = true
		if th.state == stateExited {
			unlinkAndFreeLocked(th)
		}
		return nil
	})
}
