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

import (
	"sync/atomic"

	"github.com/TECHNOSHOCKER3721/rtpthread/internal/log"
	"github.com/TECHNOSHOCKER3721/rtpthread/pkg/rtkernel"
)

// Mutex is the live kernel-backed object a MutexCell points to once
// promoted. Exactly one of sem (Normal) or rmu (Recursive) is non-nil,
// chosen once at init and never changed, per §3's invariant 6.
type Mutex struct {
	typ MutexType
	sem *rtkernel.Sem
	rmu *rtkernel.RecursiveMutex
}

// MutexCell is the user-visible mutex cell from §3/§6: it holds either the
// static-initializer sentinel or the address of a live Mutex. The source
// represents the sentinel as a reserved bit pattern distinguishable from a
// real heap address; this port represents it as the zero value of an
// atomic pointer, which is exactly as distinguishable from a live *Mutex
// as a tagged sentinel would be, without resorting to unsafe.Pointer
// tagging for something Go's nil already expresses directly.
type MutexCell struct {
	p atomic.Pointer[Mutex]
}

// StaticMutexInit is the zero-value MutexCell, equivalent to a cell
// declared holding the source's STATIC_INIT constant: not yet promoted to
// a live kernel object.
var StaticMutexInit MutexCell

// MutexInit initializes cell with the type from attr, or Normal if attr is
// nil, allocating the backing kernel primitive immediately (this is the
// dynamic-init path; static cells are left untouched until first lock).
func MutexInit(cell *MutexCell, attr *Attr) error {
	if cell == nil {
		return errInvalid("mutex_init: nil cell")
	}
	typ := Normal
	if attr != nil {
		if !attr.initialized || !attr.typ.valid() {
			return errInvalid("mutex_init: invalid attr")
		}
		typ = attr.typ
	}
	m, err := newMutex(typ)
	if err != nil {
		return err
	}
	cell.p.Store(m)
	return nil
}

func newMutex(typ MutexType) (*Mutex, error) {
	m := &Mutex{typ: typ}
	if typ == Recursive {
		m.rmu = rtkernel.NewRecursiveMutex()
	} else {
		m.sem = rtkernel.NewBinary()
	}
	return m, nil
}

// MutexDestroy refuses to proceed if the mutex is currently held, probed
// with a zero-timeout lock attempt, per §4.D. A cell that was never
// promoted past STATIC_INIT has nothing to destroy and succeeds trivially.
func MutexDestroy(cell *MutexCell) error {
	if cell == nil {
		return errInvalid("mutex_destroy: nil cell")
	}
	m := cell.p.Load()
	if m == nil {
		return nil
	}
	if !mutexTake(m, rtkernel.Poll) {
		return errBusy("mutex_destroy: mutex is held")
	}
	mutexDelete(m)
	cell.p.Store(nil)
	return nil
}

// MutexLock blocks until cell's mutex is held by the caller, promoting a
// STATIC_INIT cell first if needed.
func MutexLock(cell *MutexCell) error {
	if cell == nil {
		return errInvalid("mutex_lock: nil cell")
	}
	m, err := promote(cell)
	if err != nil {
		return err
	}
	if !mutexTake(m, rtkernel.Forever) {
		return errBusy("mutex_lock: take failed")
	}
	return nil
}

// MutexTryLock attempts to lock cell's mutex without blocking, promoting a
// STATIC_INIT cell first if needed.
func MutexTryLock(cell *MutexCell) error {
	if cell == nil {
		return errInvalid("mutex_trylock: nil cell")
	}
	m, err := promote(cell)
	if err != nil {
		return err
	}
	if !mutexTake(m, rtkernel.Poll) {
		return errBusy("mutex_trylock: contended")
	}
	return nil
}

// MutexUnlock releases cell's mutex. There is no ownership check here: the
// kernel's recursive mutex enforces owner identity on its own side for
// Recursive cells, and a Normal cell's binary semaphore has never tracked
// ownership, matching §4.D's "no ownership check" note.
func MutexUnlock(cell *MutexCell) error {
	if cell == nil {
		return errInvalid("mutex_unlock: nil cell")
	}
	m := cell.p.Load()
	if m == nil {
		return errInvalid("mutex_unlock: cell never initialized")
	}
	mutexGive(m)
	return nil
}

// promote is the static-promotion algorithm from §4.D: double-checked,
// inside a critical section, exactly because pre-emption between the
// sentinel check and the allocation would otherwise leak or duplicate
// kernel objects.
func promote(cell *MutexCell) (*Mutex, error) {
	if m := cell.p.Load(); m != nil {
		return m, nil
	}
	var m *Mutex
	var err error
	rtkernel.WithCritical(func() {
		if m = cell.p.Load(); m != nil {
			return
		}
		m, err = newMutex(Normal)
		if err != nil {
			return
		}
		cell.p.Store(m)
		log.Debugf("pthread: static mutex %p promoted", cell)
	})
	return m, err
}

func mutexTake(m *Mutex, timeout rtkernel.Timeout) bool {
	if m.typ == Recursive {
		return m.rmu.Take(timeout)
	}
	return m.sem.Take(timeout)
}

func mutexGive(m *Mutex) {
	if m.typ == Recursive {
		m.rmu.Give()
		return
	}
	m.sem.Give()
}

func mutexDelete(m *Mutex) {
	if m.typ == Recursive {
		m.rmu.Delete()
		return
	}
	m.sem.Delete()
}
