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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/pthread"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

// psCmd implements subcommands.Command for "ps": it dumps the kernel
// adapter's run-queue diagnostic plus the registry occupancy, read-only and
// through the exported rtkernel and pthread API only, never internal
// registry state directly, per
// §6's "Diagnostics surface" note.
type psCmd struct {
	asJSON bool
}

func (*psCmd) Name() string     { return "ps" }
func (*psCmd) Synopsis() string { return "list live kernel tasks by priority band" }
func (*psCmd) Usage() string    { return "ps [-json]\n" }

func (p *psCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.asJSON, "json", false, "emit JSON instead of a table")
}

// psResult is the JSON shape of "ps -json": the run-queue snapshot plus the
// registry occupancy rtkernel has no visibility into on its own.
type psResult struct {
	Tasks       []rtkernel.TaskInfo `json:"tasks"`
	ThreadCount int                 `json:"thread_count"`
	MaxThreads  int                 `json:"max_threads"`
}

func (p *psCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	tasks := rtkernel.Snapshot()
	result := psResult{
		Tasks:       tasks,
		ThreadCount: pthread.RegistryCount(),
		MaxThreads:  rtkernel.MaxThreads(),
	}
	if p.asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "pthreadctl: encoding ps result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	fmt.Printf("%-24s %s\n", "NAME", "PRIORITY")
	for _, t := range tasks {
		fmt.Printf("%-24s %d\n", t.Name, t.Priority)
	}
	fmt.Printf("threads: %d/%d\n", result.ThreadCount, result.MaxThreads)
	return subcommands.ExitSuccess
}
