package sim

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/simkit/simkit/sim/simset"
)

// State is the lifecycle state of a Process.
type State int

const (
	// StateIdle: created, never activated (or cancelled before starting).
	StateIdle State = iota
	// StateScheduled: exactly one activation record is queued.
	StateScheduled
	// StateRunning: currently dispatched; at most one process at a time.
	StateRunning
	// StateWaiting: suspended with no record; resumed only externally.
	StateWaiting
	// StateTerminated: finished; never re-enters any other state.
	StateTerminated
)

func (st State) String() string {
	switch st {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Never is the Evtime of a process with no pending activation record.
const Never = -1.0

// Process is an independently-scheduled simulation entity with its own
// suspendable control flow. The body runs on a private goroutine; control
// passes between the scheduler and the body over an unbuffered handshake,
// so despite the goroutine there is never more than one runner.
//
// Suspension primitives (Hold, Passivate, and the Entity wait family) may
// only be called from inside the process's own running body. Activation
// primitives may be called from anywhere.
type Process struct {
	id    int
	name  string
	sched *Scheduler
	state State
	body  func()

	// waitLink threads the process through semaphore waiter lists.
	waitLink *simset.Link[*Process]

	resume   chan struct{}
	yield    chan struct{}
	kill     chan struct{}
	started  bool
	killed   bool
	finished bool
	panicVal any
}

// NewProcess creates an idle process with the given body, registered with
// the current scheduler. Fatal if no scheduler is installed.
func NewProcess(name string, body func(p *Process)) *Process {
	p := &Process{}
	p.init(name)
	p.body = func() { body(p) }
	return p
}

// init wires the handshake channels and registers with the singleton
// scheduler. Shared by NewProcess and NewEntity.
func (p *Process) init(name string) {
	s := current
	if s == nil {
		fatalf(KindInvalidState, "NewProcess", 0, 0, "no scheduler installed")
	}
	p.name = name
	p.sched = s
	p.state = StateIdle
	p.resume = make(chan struct{})
	p.yield = make(chan struct{})
	p.kill = make(chan struct{})
	p.id = s.register(p)
}

// ID returns the stable identity assigned at construction.
func (p *Process) ID() int { return p.id }

// Name returns the display name.
func (p *Process) Name() string { return p.name }

// State returns the lifecycle state.
func (p *Process) State() State { return p.state }

// Terminated reports whether the process has finished.
func (p *Process) Terminated() bool { return p.state == StateTerminated }

// Evtime returns the wake time of the pending activation record, or Never.
func (p *Process) Evtime() float64 {
	if rec := p.sched.queue.lookup(p); rec != nil {
		return rec.wakeTime
	}
	return Never
}

// CurrentTime returns the scheduler's virtual clock. Always defined.
func (p *Process) CurrentTime() float64 {
	return p.sched.clock
}

// dispatch resumes the body and blocks until it suspends or finishes.
// Called only by the scheduler loop.
func (p *Process) dispatch() {
	if !p.started {
		p.started = true
		go p.run()
	}
	p.resume <- struct{}{}
	<-p.yield
	if p.panicVal != nil {
		// re-raise a body panic on the embedder's goroutine
		panic(p.panicVal)
	}
}

// run is the goroutine wrapper around the body.
func (p *Process) run() {
	defer func() {
		if r := recover(); r != nil {
			p.panicVal = r
		}
		p.finish()
	}()
	<-p.resume
	p.body()
}

// finish marks the process terminated and hands control back to the
// scheduler, unless an external stop already did the bookkeeping.
func (p *Process) finish() {
	if p.finished {
		return
	}
	p.finished = true
	p.state = StateTerminated
	p.sched.noteTerminated(p)
	logrus.Debugf("[t=%g] process %d (%s) finished", p.sched.clock, p.id, p.name)
	p.yield <- struct{}{}
}

// suspend parks the body until the scheduler dispatches it again, or until
// the process is stopped externally.
func (p *Process) suspend() {
	p.yield <- struct{}{}
	select {
	case <-p.resume:
	case <-p.kill:
		runtime.Goexit()
	}
}

// stop kills the process from outside its body: bookkeeping first, then the
// goroutine (if any) unwinds on its own without re-entering the scheduler.
func (p *Process) stop() {
	p.sched.unschedule(p)
	p.waitLink.Out()
	p.finished = true
	p.killed = true
	p.state = StateTerminated
	p.sched.noteTerminated(p)
	if p.started {
		close(p.kill)
	}
}

// mustBeRunning guards the suspension primitives: only the currently
// dispatched process may suspend itself.
func (p *Process) mustBeRunning(op string) {
	if p.sched.running != p || p.state != StateRunning {
		fatalf(KindInvalidState, op, p.id, p.sched.clock, "suspension primitive called outside the running body (state %s)", p.state)
	}
}

// Hold suspends the process for dt units of virtual time. Negative dt is a
// fatal error.
func (p *Process) Hold(dt float64) {
	p.mustBeRunning("Hold")
	if dt < 0 {
		fatalf(KindInvalidParameter, "Hold", p.id, p.sched.clock, "negative delay %g", dt)
	}
	p.sched.schedule(p, p.sched.clock+dt, 0)
	p.suspend()
}

// Passivate suspends the process with no scheduled resumption. It resumes
// only via an external Activate, Trigger or Interrupt.
func (p *Process) Passivate() {
	p.mustBeRunning("Passivate")
	p.state = StateWaiting
	p.suspend()
}

// Activate schedules the process at the current time if it is Idle or
// Waiting. No effect if already Scheduled or Running.
func (p *Process) Activate() {
	if p.state == StateTerminated {
		fatalf(KindInvalidState, "Activate", p.id, p.sched.clock, "activate on terminated process")
	}
	if p.state != StateIdle && p.state != StateWaiting {
		return
	}
	p.sched.schedule(p, p.sched.clock, 0)
}

// ActivateAt schedules the process at time t >= now, replacing any pending
// record. No effect on a Running process.
func (p *Process) ActivateAt(t float64) {
	if p.state == StateTerminated {
		fatalf(KindInvalidState, "ActivateAt", p.id, p.sched.clock, "activate on terminated process")
	}
	if t < p.sched.clock {
		fatalf(KindBackwardClock, "ActivateAt", p.id, p.sched.clock, "activation at t=%g is in the past", t)
	}
	if p.state == StateRunning {
		return
	}
	p.sched.schedule(p, t, 0)
}

// ActivateDelay schedules the process dt units from now. Equivalent to
// ActivateAt(now+dt).
func (p *Process) ActivateDelay(dt float64) {
	if dt < 0 {
		fatalf(KindInvalidParameter, "ActivateDelay", p.id, p.sched.clock, "negative delay %g", dt)
	}
	p.ActivateAt(p.sched.clock + dt)
}

// ActivateBefore schedules the process to run immediately before target at
// target's wake time. Reports false if target has no pending record.
func (p *Process) ActivateBefore(target *Process) bool {
	if p.state == StateTerminated {
		fatalf(KindInvalidState, "ActivateBefore", p.id, p.sched.clock, "activate on terminated process")
	}
	if p.state == StateRunning {
		return false
	}
	return p.sched.scheduleRelative(p, target, -1)
}

// ActivateAfter schedules the process to run immediately after target at
// target's wake time. Reports false if target has no pending record.
func (p *Process) ActivateAfter(target *Process) bool {
	if p.state == StateTerminated {
		fatalf(KindInvalidState, "ActivateAfter", p.id, p.sched.clock, "activate on terminated process")
	}
	if p.state == StateRunning {
		return false
	}
	return p.sched.scheduleRelative(p, target, 1)
}

// Cancel removes the pending activation record without terminating the
// process. A cancelled process resumes only via external activation.
func (p *Process) Cancel() {
	if p.sched.unschedule(p) || p.state == StateWaiting {
		if p.started {
			p.state = StateWaiting
		} else {
			p.state = StateIdle
		}
	}
}

// TerminateProcess finishes the process for good: any queued record is
// removed and the process never resumes. Fatal if already terminated.
// A process may terminate itself from inside its body.
func (p *Process) TerminateProcess() {
	if p.state == StateTerminated {
		fatalf(KindInvalidState, "TerminateProcess", p.id, p.sched.clock, "process already terminated")
	}
	if p.sched.running == p {
		// self-terminate: unwind the body; the goroutine wrapper hands
		// control back to the scheduler
		runtime.Goexit()
	}
	p.stop()
}
