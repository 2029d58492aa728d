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

// Package log is the thin leveled logger the rest of this tree calls into.
// It exists so that call sites read Debugf/Infof/Warningf, matching the
// style of the kernel this shim was ported from, instead of depending on
// logrus's API directly everywhere.
package log

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	std = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetLevel adjusts the global log level. "debug", "info", "warn"/"warning",
// and "error" are accepted; an unrecognized name leaves the level
// unchanged.
func SetLevel(name string) {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	std.SetLevel(lvl)
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Debugf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Infof(format, args...)
}

// Warningf logs at warning level.
func Warningf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Warningf(format, args...)
}
