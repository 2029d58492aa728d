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

// Binary pthreadctl is the diagnostics and demonstration tool for the
// pthread shim: it boots the kernel adapter, runs small create/join/detach
// and static-mutex-contention demonstrations, and dumps registry state —
// the shim's equivalent of runsc's own ps/wait command tree.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/internal/rtconfig"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(psCmd), "")
	subcommands.Register(new(demoCmd), "")
	subcommands.Register(new(stressCmd), "")
	subcommands.Register(new(debugSigCmd), "")

	configPath := flag.String("config", "", "path to a kernel tunables TOML file; defaults are used if empty")
	logLevel := flag.String("log_level", "info", "log level: debug, info, warning")
	flag.Parse()

	log.SetLevel(*logLevel)

	cfg := rtconfig.Default()
	if *configPath != "" {
		loaded, err := rtconfig.Load(*configPath)
		if err != nil {
			log.Warningf("pthreadctl: %v, falling back to defaults", err)
		} else {
			cfg = loaded
		}
	}
	rtkernel.Boot(cfg)

	os.Exit(int(subcommands.Execute(context.Background())))
}
