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

// MutexType selects normal or recursive locking semantics for a Mutex.
type MutexType int

const (
	// Normal is the default mutex type: a single binary kernel
	// semaphore with no owner tracking.
	Normal MutexType = iota
	// Recursive allows the owning thread to lock repeatedly without
	// blocking itself; each lock must be matched by an unlock, LIFO.
	Recursive
)

func (t MutexType) valid() bool {
	return t == Normal || t == Recursive
}

// Attr is a mutex-attribute object, kept separate from any Mutex it later
// configures, per §3's data model.
type Attr struct {
	typ         MutexType
	initialized bool
}

// AttrInit initializes attr to {Normal, initialized}.
func AttrInit(attr *Attr) error {
	if attr == nil {
		return errInvalid("mutexattr_init: nil attr")
	}
	attr.typ = Normal
	attr.initialized = true
	return nil
}

// AttrDestroy clears attr's initialized flag.
func AttrDestroy(attr *Attr) error {
	if attr == nil {
		return errInvalid("mutexattr_destroy: nil attr")
	}
	attr.initialized = false
	return nil
}

// AttrSettype sets the mutex type attr will configure. t must be Normal or
// Recursive.
func AttrSettype(attr *Attr, t MutexType) error {
	if attr == nil || !attr.initialized {
		return errInvalid("mutexattr_settype: attr not initialized")
	}
	if !t.valid() {
		return errInvalid("mutexattr_settype: type out of range")
	}
	attr.typ = t
	return nil
}

// AttrGettype is not implemented, matching §4.D.
func AttrGettype(*Attr) (MutexType, error) {
	return 0, errUnsupported("mutexattr_gettype is not implemented")
}
