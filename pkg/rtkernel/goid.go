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
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID recovers the calling goroutine's runtime ID by parsing the
// "goroutine N [...]" header of a single-goroutine stack dump — the same
// runtime.Stack call pkg/shim/v1/runsc/debug.go uses to dump every
// goroutine on SIGUSR2, narrowed here to the caller's own header instead
// of a full dump. It is used here for more than diagnostics: it's the
// only available substitute for the C runtime's ambient thread-local
// "current thread", which Go does not provide.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
