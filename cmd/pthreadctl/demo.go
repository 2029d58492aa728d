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
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/pthread"
)

// demoCmd runs the create/join and detach scenarios from §8's end-to-end
// scenarios 1 and 2, printing what happened at each step. It exists so a
// developer can see the lifecycle protocol run outside of a test binary.
type demoCmd struct {
	detach bool
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "run a create/join or create/detach demonstration" }
func (*demoCmd) Usage() string    { return "demo [-detach]\n" }

func (d *demoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.detach, "detach", false, "detach the child instead of joining it")
}

func (d *demoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if d.detach {
		return d.runDetach()
	}
	return d.runJoin()
}

func (d *demoCmd) runJoin() subcommands.ExitStatus {
	// Only a Create'd thread can join, so a parent thread creates and
	// joins the child and reports the outcome back here.
	joinErr := make(chan error, 1)
	if _, err := pthread.Create(nil, func(any) {
		child, err := pthread.Create(nil, func(any) {
			fmt.Println("demo: child running")
		}, nil)
		if err != nil {
			log.Warningf("pthreadctl: create failed: %v", err)
			joinErr <- err
			return
		}
		joinErr <- pthread.Join(child)
	}, nil); err != nil {
		log.Warningf("pthreadctl: create failed: %v", err)
		return subcommands.ExitFailure
	}
	if err := <-joinErr; err != nil {
		log.Warningf("pthreadctl: join failed: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Println("demo: child joined")
	return subcommands.ExitSuccess
}

func (d *demoCmd) runDetach() subcommands.ExitStatus {
	done := make(chan struct{})
	child, err := pthread.Create(nil, func(any) {
		time.Sleep(50 * time.Millisecond)
		close(done)
	}, nil)
	if err != nil {
		log.Warningf("pthreadctl: create failed: %v", err)
		return subcommands.ExitFailure
	}
	if err := pthread.Detach(child); err != nil {
		log.Warningf("pthreadctl: detach failed: %v", err)
		return subcommands.ExitFailure
	}
	<-done
	fmt.Println("demo: child detached and exited on its own")
	return subcommands.ExitSuccess
}
