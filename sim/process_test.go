package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_HoldChain(t *testing.T) {
	// Scenario: one process holds 1.0, observes the clock, holds 2.0,
	// observes again, terminates. Expected observations at 1.0 and 3.0.
	s := newTestScheduler(t)

	var times []float64
	p := NewProcess("holder", func(p *Process) {
		p.Hold(1.0)
		times = append(times, p.CurrentTime())
		p.Hold(2.0)
		times = append(times, p.CurrentTime())
	})

	p.Activate()
	s.Run()

	require.Equal(t, []float64{1.0, 3.0}, times)
	assert.Equal(t, 3.0, s.Now(), "scheduler halts at the last event time")
	assert.True(t, p.Terminated())
}

func TestProcess_StateMachine(t *testing.T) {
	s := newTestScheduler(t)

	var observed []State
	p := NewProcess("observer", func(p *Process) {
		observed = append(observed, p.State())
		p.Hold(1)
	})

	assert.Equal(t, StateIdle, p.State())
	p.Activate()
	assert.Equal(t, StateScheduled, p.State())

	s.Run()
	require.Equal(t, []State{StateRunning}, observed)
	assert.Equal(t, StateTerminated, p.State())
}

func TestProcess_UniqueRecordPerProcess(t *testing.T) {
	s := newTestScheduler(t)
	p := NewProcess("p", func(p *Process) {})

	p.ActivateAt(5)
	assert.Equal(t, 1, s.QueueLen())
	assert.Equal(t, 5.0, p.Evtime())

	// re-activation replaces the prior record
	p.ActivateAt(2)
	assert.Equal(t, 1, s.QueueLen())
	assert.Equal(t, 2.0, p.Evtime())
}

func TestProcess_ActivateNoEffectWhenScheduled(t *testing.T) {
	s := newTestScheduler(t)
	p := NewProcess("p", func(p *Process) {})

	p.ActivateAt(5)
	p.Activate() // no effect: already scheduled
	assert.Equal(t, 1, s.QueueLen())
	assert.Equal(t, 5.0, p.Evtime())
}

func TestProcess_SameTimeFIFO(t *testing.T) {
	// Property: for two activations at the same virtual time, the
	// first-activated runs first.
	s := newTestScheduler(t)

	var order []string
	mk := func(name string) *Process {
		return NewProcess(name, func(p *Process) {
			order = append(order, name)
		})
	}
	a, b, c := mk("a"), mk("b"), mk("c")

	b.ActivateAt(1)
	a.ActivateAt(1)
	c.ActivateAt(1)
	s.Run()

	assert.Equal(t, []string{"b", "a", "c"}, order)
}

func TestProcess_ClockMonotonicity(t *testing.T) {
	// Property: dispatch times never decrease.
	s := newTestScheduler(t)

	var times []float64
	delays := []float64{3, 0, 7, 1, 1, 0, 5, 2}
	for i, d := range delays {
		d := d
		p := NewProcess("p", func(p *Process) {
			times = append(times, p.CurrentTime())
			p.Hold(d)
			times = append(times, p.CurrentTime())
		})
		p.ActivateAt(float64(i % 3))
	}
	s.Run()

	for i := 1; i < len(times); i++ {
		assert.LessOrEqual(t, times[i-1], times[i], "dispatch %d went backwards", i)
	}
}

func TestProcess_PassivateResumesOnlyViaActivate(t *testing.T) {
	s := newTestScheduler(t)

	resumedAt := -1.0
	p := NewProcess("sleeper", func(p *Process) {
		p.Passivate()
		resumedAt = p.CurrentTime()
	})
	p.Activate()

	waker := NewProcess("waker", func(w *Process) {
		w.Hold(4)
		p.Activate()
	})
	waker.Activate()

	s.Run()
	assert.Equal(t, 4.0, resumedAt)
	assert.True(t, p.Terminated())
}

func TestProcess_CancelRemovesRecord(t *testing.T) {
	s := newTestScheduler(t)
	p := NewProcess("p", func(p *Process) {})
	p.ActivateAt(5)

	p.Cancel()

	assert.Equal(t, 0, s.QueueLen())
	assert.Equal(t, Never, p.Evtime())
	s.Run()
	assert.False(t, p.Terminated(), "cancelled process never ran")
}

func TestProcess_ActivateBeforeAfter(t *testing.T) {
	s := newTestScheduler(t)

	var order []string
	mk := func(name string) *Process {
		return NewProcess(name, func(p *Process) {
			order = append(order, name)
		})
	}
	anchor, before, after := mk("anchor"), mk("before"), mk("after")

	anchor.ActivateAt(2)
	require.True(t, after.ActivateAfter(anchor))
	require.True(t, before.ActivateBefore(anchor))
	s.Run()

	assert.Equal(t, []string{"before", "anchor", "after"}, order)
}

func TestProcess_ActivateBeforeUnscheduledTarget(t *testing.T) {
	newTestScheduler(t)
	target := NewProcess("target", func(p *Process) {})
	p := NewProcess("p", func(p *Process) {})

	assert.False(t, p.ActivateBefore(target))
	assert.False(t, p.ActivateAfter(target))
}

func TestProcess_SelfTerminateStopsBody(t *testing.T) {
	s := newTestScheduler(t)

	reachedEnd := false
	p := NewProcess("quitter", func(p *Process) {
		p.Hold(1)
		p.TerminateProcess()
		reachedEnd = true
	})
	p.Activate()
	s.Run()

	assert.False(t, reachedEnd, "body must not continue past TerminateProcess")
	assert.True(t, p.Terminated())
	assert.Equal(t, 1.0, s.Now())
}

func TestProcess_ExternalTerminateRemovesRecord(t *testing.T) {
	s := newTestScheduler(t)

	ran := false
	victim := NewProcess("victim", func(p *Process) {
		ran = true
	})
	victim.ActivateAt(10)

	killer := NewProcess("killer", func(p *Process) {
		p.Hold(3)
		victim.TerminateProcess()
	})
	killer.Activate()

	s.Run()
	assert.False(t, ran, "terminated process must never run")
	assert.True(t, victim.Terminated())
	assert.Equal(t, 3.0, s.Now())
}

func TestProcess_FatalErrors(t *testing.T) {
	// A fatal error aborts the run, so every sub-test gets its own
	// scheduler.
	t.Run("negative hold", func(t *testing.T) {
		s := newTestScheduler(t)
		p := NewProcess("bad", func(p *Process) {
			p.Hold(-1)
		})
		p.Activate()
		assert.Equal(t, KindInvalidParameter, panicKind(s.Run))
	})

	t.Run("suspension outside body", func(t *testing.T) {
		newTestScheduler(t)
		p := NewProcess("outside", func(p *Process) {})
		assert.Equal(t, KindInvalidState, panicKind(func() { p.Hold(1) }))
		assert.Equal(t, KindInvalidState, panicKind(p.Passivate))
	})

	t.Run("activate in past", func(t *testing.T) {
		s := newTestScheduler(t)
		p := NewProcess("past", func(p *Process) {})
		assert.Equal(t, KindBackwardClock, panicKind(func() { p.ActivateAt(s.Now() - 1) }))
	})

	t.Run("activate terminated", func(t *testing.T) {
		s := newTestScheduler(t)
		p := NewProcess("done", func(p *Process) {})
		p.Activate()
		s.Run()
		require.True(t, p.Terminated())
		assert.Equal(t, KindInvalidState, panicKind(p.Activate))
	})

	t.Run("double terminate", func(t *testing.T) {
		newTestScheduler(t)
		p := NewProcess("twice", func(p *Process) {})
		p.TerminateProcess()
		assert.Equal(t, KindInvalidState, panicKind(p.TerminateProcess))
	})

	t.Run("negative activate delay", func(t *testing.T) {
		newTestScheduler(t)
		p := NewProcess("neg", func(p *Process) {})
		assert.Equal(t, KindInvalidParameter, panicKind(func() { p.ActivateDelay(-2) }))
	})
}
