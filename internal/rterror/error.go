// Package rterror defines the layered error representation used internally
// by the kernel adapter and the pthread shim. Every failure is constructed
// here as an Error carrying the abstract taxonomy of the design (§7) plus
// the concrete syscall.Errno that must cross the external API boundary, so
// that log lines can carry context a bare errno can't while the exported
// functions still return exactly the errno table the caller expects.
package rterror

import (
	"fmt"
	"syscall"
)

// Category is the abstract error taxonomy, independent of which POSIX errno
// a given operation happens to surface it as.
type Category int

const (
	// Invalid denotes a disallowed null, a corrupted attribute, an
	// out-of-range mutex type, or a double-armed join.
	Invalid Category = iota
	// NotFound denotes a handle absent from the registry.
	NotFound
	// WouldDeadlock denotes a self-join or mutual join.
	WouldDeadlock
	// ResourceExhausted denotes an allocation, task-create, or
	// registry-mutex-take failure.
	ResourceExhausted
	// Busy denotes a mutex held at destroy, or trylock contention.
	Busy
	// Unsupported denotes an intentionally unimplemented feature.
	Unsupported
	// Internal denotes a post-wait registry-mutex reacquire failure or
	// other condition that isn't the caller's fault.
	Internal
)

func (c Category) String() string {
	switch c {
	case Invalid:
		return "invalid argument"
	case NotFound:
		return "not found"
	case WouldDeadlock:
		return "would deadlock"
	case ResourceExhausted:
		return "resource exhausted"
	case Busy:
		return "busy"
	case Unsupported:
		return "unsupported"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the internal representation of a shim failure.
type Error struct {
	Category Category
	Note     string
	errno    syscall.Errno
}

// New constructs an Error in category cat that surfaces as errno at the API
// boundary, annotated with note for logging.
func New(cat Category, errno syscall.Errno, note string) *Error {
	return &Error{Category: cat, Note: note, errno: errno}
}

// Errno returns the concrete POSIX error code this failure must be reported
// as across the exported API.
func (e *Error) Errno() syscall.Errno {
	if e == nil {
		return 0
	}
	return e.errno
}

func (e *Error) Error() string {
	if e.Note == "" {
		return fmt.Sprintf("%s: %s", e.Category, e.errno)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Category, e.Note, e.errno)
}

// Errno extracts the POSIX errno a generic error should be reported as,
// defaulting to EINVAL for anything that isn't a *rterror.Error.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	if rte, ok := err.(*Error); ok {
		return rte.Errno()
	}
	return syscall.EINVAL
}
