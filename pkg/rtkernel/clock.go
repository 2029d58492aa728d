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
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Timeout is a bounded tick count, or one of the two sentinels Forever and
// Poll, exactly as §4.A specifies: "Timeouts are expressed either as
// FOREVER or as a bounded tick count; 0 means poll."
type Timeout int64

const (
	// Forever blocks until the operation succeeds.
	Forever Timeout = -1
	// Poll never blocks; it either succeeds immediately or fails.
	Poll Timeout = 0
)

// Duration converts a tick count to a wall-clock duration using the
// process-wide tick length. Forever and Poll must be special-cased by the
// caller; Duration panics if asked to convert them, since neither has a
// meaningful fixed duration.
func (t Timeout) Duration() time.Duration {
	if t == Forever || t == Poll {
		panic("rtkernel: Duration called on a sentinel Timeout")
	}
	return time.Duration(t) * TickDuration()
}

var tickNanos atomic.Int64

func init() {
	tickNanos.Store(int64(time.Millisecond))
}

// SetTickDuration configures the length of one simulated RTOS tick. It must
// be called, if at all, before any timed kernel operation is outstanding;
// ordinarily it is called once at startup from the loaded rtconfig.Config.
func SetTickDuration(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	tickNanos.Store(int64(d))
}

// TickDuration returns the current tick length.
func TickDuration() time.Duration {
	return time.Duration(tickNanos.Load())
}

// tickSource paces a monotonically increasing tick counter using a
// rate.Limiter, standing in for the periodic timer interrupt a real RTOS
// derives its tick count from. Nothing in the shim's correctness depends on
// this counter — all blocking here is done with real wall-clock timers —
// but it gives diagnostics (and tests that want to assert forward tick
// progress) an authentic tick source rather than a wall-clock reading.
type tickSource struct {
	limiter *rate.Limiter
	count   atomic.Uint64
	stop    chan struct{}
	once    atomic.Bool
}

var ticks = &tickSource{stop: make(chan struct{})}

// StartTickSource begins advancing the global tick counter at one tick per
// TickDuration. It is idempotent; only the first call has an effect.
func StartTickSource() {
	if !ticks.once.CompareAndSwap(false, true) {
		return
	}
	d := TickDuration()
	ticks.limiter = rate.NewLimiter(rate.Every(d), 1)
	go func() {
		ctx := context.Background()
		for {
			select {
			case <-ticks.stop:
				return
			default:
			}
			if err := ticks.limiter.WaitN(ctx, 1); err != nil {
				return
			}
			ticks.count.Add(1)
		}
	}()
}

// Ticks returns the number of ticks elapsed since StartTickSource was
// called, or 0 if it never was.
func Ticks() uint64 {
	return ticks.count.Load()
}
