package sim

import (
	"errors"
	"fmt"
)

// Kind classifies kernel errors so embedders can introspect them.
type Kind int

const (
	// KindInvalidParameter reports an argument outside its domain:
	// negative hold, negative semaphore capacity, negative timeout.
	KindInvalidParameter Kind = iota + 1

	// KindInvalidState reports an operation illegal for the current
	// process or scheduler state: a suspension primitive called outside
	// the running body, activate on a terminated process, nested
	// schedulers. Semaphore.Release never raises it: a release with no
	// waiters banks a resource whether or not one was acquired.
	KindInvalidState

	// KindBackwardClock reports an attempt to schedule an event before
	// the current virtual time.
	KindBackwardClock
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid parameter"
	case KindInvalidState:
		return "invalid state"
	case KindBackwardClock:
		return "backward clock"
	}
	return "unknown"
}

// Error is a kernel error with diagnostic context. Programmer errors are
// fatal: the kernel panics with an *Error, which Scheduler.Run re-raises on
// the embedder's goroutine.
type Error struct {
	Kind      Kind
	Op        string
	ProcessID int
	Time      float64
	Msg       string
}

func (e *Error) Error() string {
	if e.ProcessID > 0 {
		return fmt.Sprintf("sim: %s: %s: %s (process %d, t=%g)", e.Op, e.Kind, e.Msg, e.ProcessID, e.Time)
	}
	return fmt.Sprintf("sim: %s: %s: %s (t=%g)", e.Op, e.Kind, e.Msg, e.Time)
}

// KindOf extracts the Kind from an error, or 0 if it is not a kernel error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// fatalf aborts the run with a typed error. pid may be 0 when no process is
// involved.
func fatalf(kind Kind, op string, pid int, now float64, format string, args ...any) {
	panic(&Error{
		Kind:      kind,
		Op:        op,
		ProcessID: pid,
		Time:      now,
		Msg:       fmt.Sprintf(format, args...),
	})
}
