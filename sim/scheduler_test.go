package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_SingletonLifecycle(t *testing.T) {
	s := newTestScheduler(t)
	assert.Equal(t, s, CurrentScheduler())

	// a second scheduler before Terminate is a fatal error
	assert.Equal(t, KindInvalidState, panicKind(func() { NewScheduler() }))

	s.Terminate()
	assert.Nil(t, CurrentScheduler())

	// after Terminate a fresh run starts cleanly at time zero
	s2 := NewScheduler()
	defer s2.Terminate()
	assert.Equal(t, 0.0, s2.Now())
}

func TestScheduler_NowWithoutScheduler(t *testing.T) {
	if current != nil {
		current.Terminate()
	}
	assert.Equal(t, 0.0, Now(), "Now is always defined")
}

func TestScheduler_RunOnEmptyQueueHalts(t *testing.T) {
	s := newTestScheduler(t)
	s.Run()
	assert.Equal(t, 0.0, s.Now())
	assert.Equal(t, uint64(0), s.EventsDispatched())
}

func TestScheduler_RunUntilLeavesFutureRecords(t *testing.T) {
	s := newTestScheduler(t)

	var times []float64
	mk := func(at float64) {
		p := NewProcess("p", func(p *Process) {
			times = append(times, p.CurrentTime())
		})
		p.ActivateAt(at)
	}
	mk(1)
	mk(5)
	mk(9)

	// WHEN running with a bound between records
	s.RunUntil(6)

	// THEN records beyond the bound stay queued and the clock stops at the
	// last dispatched event
	assert.Equal(t, []float64{1, 5}, times)
	assert.Equal(t, 5.0, s.Now())
	assert.Equal(t, 1, s.QueueLen())

	// AND a later Run picks the remaining record up
	s.Run()
	assert.Equal(t, []float64{1, 5, 9}, times)
	assert.Equal(t, 9.0, s.Now())
}

func TestScheduler_RunUntilBoundInclusive(t *testing.T) {
	s := newTestScheduler(t)

	ran := false
	p := NewProcess("p", func(p *Process) { ran = true })
	p.ActivateAt(3)

	s.RunUntil(3)
	assert.True(t, ran, "a record exactly at the bound dispatches")
}

func TestScheduler_CountsDispatches(t *testing.T) {
	s := newTestScheduler(t)

	for i := 0; i < 3; i++ {
		p := NewProcess("p", func(p *Process) {
			p.Hold(1)
		})
		p.Activate()
	}
	s.Run()

	// each process dispatches twice: once at 0, once after the hold
	assert.Equal(t, uint64(6), s.EventsDispatched())
	assert.Equal(t, 0, s.ProcessCount(), "all processes terminated")
}

func TestScheduler_TerminateStopsLiveProcesses(t *testing.T) {
	s := newTestScheduler(t)

	p := NewProcess("sleeper", func(p *Process) {
		p.Passivate()
	})
	p.Activate()
	s.Run()

	require.Equal(t, StateWaiting, p.State())
	s.Terminate()

	assert.Equal(t, StateTerminated, p.State())
	assert.Nil(t, CurrentScheduler())
}

func TestScheduler_FreshRunAfterTerminate(t *testing.T) {
	s := newTestScheduler(t)
	p := NewProcess("p", func(p *Process) { p.Hold(7) })
	p.Activate()
	s.Run()
	require.Equal(t, 7.0, s.Now())
	s.Terminate()

	// a new run starts from a clean clock and empty registry
	s2 := NewScheduler()
	defer s2.Terminate()
	assert.Equal(t, 0.0, s2.Now())
	assert.Equal(t, 0, s2.ProcessCount())
	assert.Equal(t, 0, s2.QueueLen())
}

func TestScheduler_ProcessCount(t *testing.T) {
	s := newTestScheduler(t)
	assert.Equal(t, 0, s.ProcessCount())

	p := NewProcess("p", func(p *Process) {})
	NewProcess("q", func(p *Process) {})
	assert.Equal(t, 2, s.ProcessCount())

	p.Activate()
	s.Run()
	assert.Equal(t, 1, s.ProcessCount(), "only the dispatched process terminated")
}
