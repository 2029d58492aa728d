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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

var debugSigOnce sync.Once

// installDebugSigHandler arms a SIGUSR2 handler that dumps a full
// goroutine stack trace plus the current run-queue snapshot, so the process
// can be inspected from outside without attaching a debugger. Only the
// debugsig subcommand arms it, and the dump is logged at debug level.
func installDebugSigHandler() {
	debugSigOnce.Do(func() {
		dumpCh := make(chan os.Signal, 1)
		signal.Notify(dumpCh, syscall.SIGUSR2)
		go func() {
			buf := make([]byte, 10240)
			for range dumpCh {
				for {
					n := runtime.Stack(buf, true)
					if n < len(buf) {
						log.Debugf("pthreadctl: stack trace requested:\n%s", buf[:n])
						break
					}
					buf = make([]byte, 2*len(buf))
				}
				for _, t := range rtkernel.Snapshot() {
					log.Debugf("pthreadctl: task %q priority=%d", t.Name, t.Priority)
				}
			}
		}()
		log.Debugf("pthreadctl: for a stack+task dump run: kill -%d %d", syscall.SIGUSR2, os.Getpid())
	})
}

// debugSigCmd arms the SIGUSR2 handler and then idles, so the binary can be
// signaled externally for diagnosis; it exits on its own after the given
// duration.
type debugSigCmd struct {
	forSeconds int
}

func (*debugSigCmd) Name() string     { return "debugsig" }
func (*debugSigCmd) Synopsis() string { return "arm a SIGUSR2 stack+task dump handler and idle" }
func (*debugSigCmd) Usage() string    { return "debugsig [-for seconds]\n" }

func (d *debugSigCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&d.forSeconds, "for", 30, "seconds to idle while armed")
}

func (d *debugSigCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	installDebugSigHandler()
	time.Sleep(time.Duration(d.forSeconds) * time.Second)
	return subcommands.ExitSuccess
}
