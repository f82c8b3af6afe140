package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/simkit/simkit/sim/simset"
)

// WaitResult reports why a wait ended. Exactly one of Interrupted or
// Triggered is true after a delivered signal. Both are false when WaitFor
// timed out (TimedOut is then true) and when a plain Activate resumed a Wait
// (all three fields are then false).
type WaitResult struct {
	Interrupted bool
	Triggered   bool
	TimedOut    bool
}

// Entity is a Process extended with non-causal signalling: it can wait for
// a trigger or interrupt, and deliver them to other entities. The
// interrupted/triggered flags are one-shot: set by another process, cleared
// when observed.
type Entity struct {
	Process

	waiting     bool
	interrupted bool
	triggered   bool

	// queueLink threads the entity through trigger queues.
	queueLink *simset.Link[*Entity]
}

// NewEntity creates an idle entity with the given body, registered with the
// current scheduler.
func NewEntity(name string, body func(e *Entity)) *Entity {
	e := &Entity{}
	e.init(name)
	e.Process.body = func() { body(e) }
	e.queueLink = simset.NewLink(e)
	return e
}

// Waiting reports whether the entity is inside Wait or WaitFor.
func (e *Entity) Waiting() bool { return e.waiting }

// Interrupted reports and clears the one-shot interrupted flag. Check it
// after a Hold that may have been cut short.
func (e *Entity) Interrupted() bool {
	v := e.interrupted
	e.interrupted = false
	return v
}

// Triggered reports and clears the one-shot triggered flag.
func (e *Entity) Triggered() bool {
	v := e.triggered
	e.triggered = false
	return v
}

// consumeFlags builds a WaitResult from the one-shot flags and clears them.
func (e *Entity) consumeFlags() WaitResult {
	res := WaitResult{Interrupted: e.interrupted, Triggered: e.triggered}
	e.interrupted = false
	e.triggered = false
	return res
}

// Wait suspends until another process triggers or interrupts this entity.
// If a signal was latched while the entity was not waiting, Wait consumes
// it and returns immediately.
func (e *Entity) Wait() WaitResult {
	e.mustBeRunning("Wait")
	if e.interrupted || e.triggered {
		return e.consumeFlags()
	}
	e.waiting = true
	e.state = StateWaiting
	e.suspend()
	e.waiting = false
	return e.consumeFlags()
}

// WaitFor waits like Wait but with a timeout: whichever of signal and
// timeout occurs first wins, and the loser is cancelled before the entity
// resumes. A timeout is reported with both flags false and TimedOut true.
func (e *Entity) WaitFor(timeout float64) WaitResult {
	e.mustBeRunning("WaitFor")
	if timeout < 0 {
		fatalf(KindInvalidParameter, "WaitFor", e.id, e.sched.clock, "negative timeout %g", timeout)
	}
	if e.interrupted || e.triggered {
		return e.consumeFlags()
	}
	e.waiting = true
	// the timeout record doubles as the wait state: a signal replaces it
	// with an immediate activation
	e.sched.schedule(&e.Process, e.sched.clock+timeout, 0)
	e.suspend()
	e.waiting = false
	res := e.consumeFlags()
	res.TimedOut = !res.Interrupted && !res.Triggered
	return res
}

// Interrupt sets target's interrupted flag and wakes it: a waiting entity
// resumes now, and an entity scheduled for a hold has its record cancelled
// and resumes immediately. Reports whether the interrupt was delivered.
// Interrupts are not latched: an idle, running or terminated target is left
// alone.
func (e *Entity) Interrupt(target *Entity) bool {
	if target == nil || target.sched != e.sched {
		return false
	}
	if target.interrupted || target.triggered {
		// flags are mutually exclusive on a single resumption
		return false
	}
	switch target.state {
	case StateWaiting, StateScheduled:
		target.interrupted = true
		e.sched.schedule(&target.Process, e.sched.clock, 0)
		logrus.Debugf("[t=%g] entity %d (%s) interrupts entity %d (%s)",
			e.sched.clock, e.id, e.name, target.id, target.name)
		return true
	default:
		return false
	}
}

// Trigger sets target's triggered flag. A waiting entity resumes now; an
// entity that is not waiting keeps the flag latched for its next Wait.
// Reports whether the trigger was delivered or latched.
func (e *Entity) Trigger(target *Entity) bool {
	return e.sched.triggerEntity(target)
}

// triggerEntity is the shared trigger delivery used by Entity.Trigger and
// TriggerQueue.
func (s *Scheduler) triggerEntity(target *Entity) bool {
	if target == nil || target.sched != s || target.state == StateTerminated {
		return false
	}
	if target.interrupted || target.triggered {
		return false
	}
	target.triggered = true
	if !target.waiting && target.state != StateWaiting {
		// not waiting: latch for the next Wait
		logrus.Debugf("[t=%g] trigger latched for entity %d (%s)", s.clock, target.id, target.name)
		return true
	}
	s.schedule(&target.Process, s.clock, 0)
	logrus.Debugf("[t=%g] entity %d (%s) triggered", s.clock, target.id, target.name)
	return true
}
