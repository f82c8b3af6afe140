package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/simkit/simkit/sim/simset"
)

// Semaphore is a counting semaphore over simulated processes. Acquisition
// order is strict FIFO and there are no spurious wakeups: a blocked Get
// returns only after a matching Release hands the resource over.
//
// As long as every Release matches an earlier acquisition, free resources
// plus acquired-but-not-released resources stay constant between
// operations; a process blocked in Get holds none. A semaphore constructed with zero resources works as a signal
// channel: Release before any Get banks a resource for the next getter.
type Semaphore struct {
	sched     *Scheduler
	resources int
	waiters   *simset.Head[*Process]
}

// NewSemaphore creates a semaphore with the given capacity. Negative
// capacity is a fatal error.
func NewSemaphore(resources int) *Semaphore {
	s := current
	if s == nil {
		fatalf(KindInvalidState, "NewSemaphore", 0, 0, "no scheduler installed")
	}
	if resources < 0 {
		fatalf(KindInvalidParameter, "NewSemaphore", 0, s.clock, "negative capacity %d", resources)
	}
	return &Semaphore{
		sched:     s,
		resources: resources,
		waiters:   simset.NewHead[*Process](),
	}
}

// Available returns the number of free resources.
func (sem *Semaphore) Available() int { return sem.resources }

// NumberWaiting returns the number of processes blocked in Get.
func (sem *Semaphore) NumberWaiting() int { return sem.waiters.Cardinal() }

// Get acquires one resource for the running process p. If none is free, p
// joins the FIFO waiter queue and suspends until a Release hands one over.
func (sem *Semaphore) Get(p *Process) {
	p.mustBeRunning("Semaphore.Get")
	if sem.resources > 0 {
		sem.resources--
		return
	}
	logrus.Debugf("[t=%g] process %d (%s) blocks on semaphore (%d waiting)",
		sem.sched.clock, p.id, p.name, sem.waiters.Cardinal()+1)
	p.waitLink.Into(sem.waiters)
	p.state = StateWaiting
	p.suspend()
}

// TryGet acquires a resource without blocking. Reports false if none is
// free.
func (sem *Semaphore) TryGet() bool {
	if sem.resources == 0 {
		return false
	}
	sem.resources--
	return true
}

// Release returns one resource. If processes are waiting, the head of the
// FIFO is activated now and the resource passes to it directly (capacity
// unchanged); otherwise the capacity grows back.
func (sem *Semaphore) Release() {
	if head := sem.waiters.First(); head != nil {
		p := head.Out().Item()
		sem.sched.schedule(p, sem.sched.clock, 0)
		logrus.Debugf("[t=%g] semaphore released to process %d (%s)", sem.sched.clock, p.id, p.name)
		return
	}
	sem.resources++
}
