// Package sim provides a discrete-event simulation kernel in the SIMULA
// tradition: cooperative processes advance a virtual clock, synchronize via
// semaphores and triggers, and suspend through hold/passivate/wait.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - scheduler.go: the virtual clock, the run loop, and the per-run singleton
//   - process.go: the process state machine and suspension primitives
//   - entity.go: wait/interrupt/trigger signalling on top of Process
//
// # Architecture
//
// The kernel is single-threaded in virtual time. Each process body runs on
// its own goroutine, but an unbuffered resume/yield handshake guarantees
// that at most one goroutine is ever unblocked: the scheduler sleeps while
// a body runs, and every suspension primitive parks the body before waking
// the scheduler. Yield points are exactly Hold, Passivate, Wait, WaitFor
// and a blocking Semaphore.Get.
//
// Supporting packages:
//   - sim/simset/: SIMSET-style intrusive lists used for semaphore waiter
//     queues and trigger queues
//   - sim/rng/: the deterministic PRNG substrate and random-variate streams
//   - sim/stats/: online statistics aggregators for model output
//   - sim/telemetry/: prometheus collectors observing a live scheduler
//
// A typical embedding builds processes with NewProcess/NewEntity, activates
// them, calls Run, and finally Terminate to release the singleton:
//
//	s := sim.NewScheduler()
//	defer s.Terminate()
//	p := sim.NewProcess("worker", func(p *sim.Process) {
//		p.Hold(1.0)
//	})
//	p.Activate()
//	s.Run()
package sim
