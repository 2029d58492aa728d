// Copyright 2020 The gVisor Authors.
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

// Package rtconfig loads the kernel adapter's tunables: default task
// priority, default stack size hint, tick duration, and the maximum number
// of live threads the registry will accept. These mirror the constants the
// source hard-codes (TASK_PRIORITY_DEFAULT, TASK_STACK_DEPTH_DEFAULT) but
// are made configurable, the way runsc's own Config is loaded from a file
// rather than compiled in.
package rtconfig

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds kernel tunables for one process.
type Config struct {
	Kernel KernelConfig `toml:"kernel"`
}

// KernelConfig is the [kernel] table of the tunables file.
type KernelConfig struct {
	// DefaultPriority is the priority newly-created tasks run at, absent
	// per-call overrides. The source's TASK_PRIORITY_DEFAULT is 8.
	DefaultPriority int `toml:"default_priority"`

	// DefaultStackBytes is a sizing hint carried through for parity with
	// the source's TASK_STACK_DEPTH_DEFAULT (0x2000); goroutines grow
	// their own stacks, so this is informational only: Load does not
	// validate it and nothing in the kernel adapter reads it.
	DefaultStackBytes int `toml:"default_stack_bytes"`

	// TickMillis is the duration of one simulated RTOS tick, the unit
	// bounded timeouts are expressed in.
	TickMillis int `toml:"tick_millis"`

	// MaxThreads bounds how many live descriptors the registry accepts
	// before Create starts failing with EAGAIN, mirroring the embedded
	// target's practical ceiling (tens of threads, never thousands).
	MaxThreads int `toml:"max_threads"`
}

// Default returns the tunables used when no config file is present.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			DefaultPriority:   8,
			DefaultStackBytes: 0x2000,
			TickMillis:        1,
			MaxThreads:        256,
		},
	}
}

// TickDuration returns the configured tick length as a time.Duration.
func (c *KernelConfig) TickDuration() time.Duration {
	if c.TickMillis <= 0 {
		return time.Millisecond
	}
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Load reads tunables from a TOML file at path, filling in defaults for any
// field the file omits.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding kernel config %q: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("kernel config %q: unrecognized keys: %v", path, undec)
	}
	if cfg.Kernel.DefaultPriority < 0 {
		return nil, fmt.Errorf("kernel config %q: default_priority must be >= 0", path)
	}
	if cfg.Kernel.MaxThreads <= 0 {
		return nil, fmt.Errorf("kernel config %q: max_threads must be > 0", path)
	}
	return cfg, nil
}
