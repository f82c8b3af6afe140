package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/simkit/simkit/sim/simset"
)

// current is the singleton scheduler for the running simulation, so that
// processes can discover "now" without being passed it. NewScheduler
// installs it; Terminate clears it. Nested runs are forbidden.
var current *Scheduler

// Scheduler owns the virtual clock, the event queue and the registry of
// processes for one simulation run. At most one simulated process is ever
// running; the whole kernel is single-threaded in virtual time.
type Scheduler struct {
	clock   float64
	queue   *eventQueue
	seq     uint64
	running *Process

	processes map[int]*Process
	nextID    int
	live      int

	dispatched uint64
}

// NewScheduler creates the scheduler for a fresh run and installs it as the
// process-wide singleton. Creating a second scheduler before terminating
// the first is a fatal error.
func NewScheduler() *Scheduler {
	if current != nil {
		fatalf(KindInvalidState, "NewScheduler", 0, current.clock, "a scheduler already exists; call Terminate first")
	}
	s := &Scheduler{
		queue:     newEventQueue(),
		processes: make(map[int]*Process),
	}
	current = s
	logrus.Debugf("scheduler created")
	return s
}

// CurrentScheduler returns the installed scheduler, or nil between runs.
func CurrentScheduler() *Scheduler {
	return current
}

// Now returns the current virtual time of the installed scheduler, or 0
// when no run is active. Always defined.
func Now() float64 {
	if current == nil {
		return 0
	}
	return current.clock
}

// Now returns the current virtual time.
func (s *Scheduler) Now() float64 {
	return s.clock
}

// QueueLen returns the number of pending activation records.
func (s *Scheduler) QueueLen() int {
	return s.queue.Len()
}

// ProcessCount returns the number of registered, non-terminated processes.
func (s *Scheduler) ProcessCount() int {
	return s.live
}

// EventsDispatched returns the number of records dispatched so far.
func (s *Scheduler) EventsDispatched() uint64 {
	return s.dispatched
}

// Run dispatches events until the queue empties.
func (s *Scheduler) Run() {
	s.run(math.Inf(1))
}

// RunUntil dispatches events until the queue empties or the next record
// lies beyond until. That record stays queued and the clock stops at the
// last dispatched event.
func (s *Scheduler) RunUntil(until float64) {
	s.run(until)
}

func (s *Scheduler) run(until float64) {
	if s.running != nil {
		fatalf(KindInvalidState, "Run", s.running.id, s.clock, "scheduler is already running")
	}
	logrus.Debugf("[t=%g] run starting, %d records queued", s.clock, s.queue.Len())

	for {
		next := s.queue.peek()
		if next == nil {
			break
		}
		if next.wakeTime > until {
			logrus.Debugf("[t=%g] next record at t=%g beyond until=%g, halting", s.clock, next.wakeTime, until)
			break
		}
		rec := s.queue.popMin()
		if rec.wakeTime < s.clock {
			fatalf(KindBackwardClock, "Run", rec.proc.id, s.clock, "record at t=%g behind clock", rec.wakeTime)
		}
		// the clock never moves backwards
		s.clock = rec.wakeTime
		s.dispatched++

		p := rec.proc
		p.state = StateRunning
		s.running = p
		logrus.Debugf("[t=%g] dispatching process %d (%s)", s.clock, p.id, p.name)
		p.dispatch()
		s.running = nil
	}
	logrus.Debugf("[t=%g] run ended after %d dispatches", s.clock, s.dispatched)
}

// Terminate tears the run down: every live process goroutine is stopped,
// the queue is cleared and the singleton slot is freed so a new run can
// start cleanly.
func (s *Scheduler) Terminate() {
	if current != s {
		return
	}
	for _, p := range s.processes {
		if p.state != StateTerminated {
			p.stop()
		}
	}
	s.queue.clear()
	s.running = nil
	current = nil
	logrus.Debugf("[t=%g] scheduler terminated", s.clock)
}

// register assigns an id to a fresh process and adds it to the registry.
func (s *Scheduler) register(p *Process) int {
	s.nextID++
	id := s.nextID
	s.processes[id] = p
	s.live++
	p.waitLink = simset.NewLink(p)
	return id
}

// noteTerminated updates the registry when a process finishes.
func (s *Scheduler) noteTerminated(p *Process) {
	s.live--
}

// schedule inserts an activation record for p at time at, replacing any
// pending record. Scheduling into the past is a fatal error.
func (s *Scheduler) schedule(p *Process, at float64, prio int) {
	if at < s.clock {
		fatalf(KindBackwardClock, "schedule", p.id, s.clock, "activation at t=%g is in the past", at)
	}
	// a scheduled process cannot stay parked in a waiter list
	p.waitLink.Out()
	s.seq++
	s.queue.insert(&eventRecord{wakeTime: at, prio: prio, seq: s.seq, proc: p})
	p.state = StateScheduled
}

// scheduleRelative inserts a record for p adjacent to target's pending
// record. Reports false if target has no record.
func (s *Scheduler) scheduleRelative(p *Process, target *Process, delta int) bool {
	rec := s.queue.lookup(target)
	if rec == nil {
		return false
	}
	p.waitLink.Out()
	s.seq++
	s.queue.insert(&eventRecord{wakeTime: rec.wakeTime, prio: rec.prio + delta, seq: s.seq, proc: p})
	p.state = StateScheduled
	return true
}

// unschedule cancels p's pending record, if any.
func (s *Scheduler) unschedule(p *Process) bool {
	return s.queue.remove(p)
}
