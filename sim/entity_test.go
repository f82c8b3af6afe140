package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_InterruptInHold(t *testing.T) {
	// Scenario: A holds 10.0 starting at 0; B interrupts A at 3.0. A
	// resumes at 3.0 with interrupted=true and its record at 10.0 is gone.
	s := newTestScheduler(t)

	var resumedAt float64
	var interrupted bool
	a := NewEntity("a", func(e *Entity) {
		e.Hold(10.0)
		resumedAt = e.CurrentTime()
		interrupted = e.Interrupted()
	})
	a.Activate()

	b := NewEntity("b", func(e *Entity) {
		e.Hold(3.0)
		require.True(t, e.Interrupt(a))
	})
	b.Activate()

	s.Run()

	assert.Equal(t, 3.0, resumedAt)
	assert.True(t, interrupted)
	assert.Equal(t, 3.0, s.Now(), "the original record at 10.0 must be gone")
}

func TestEntity_TriggerWakesWaiter(t *testing.T) {
	s := newTestScheduler(t)

	var res WaitResult
	var resumedAt float64
	waiter := NewEntity("waiter", func(e *Entity) {
		res = e.Wait()
		resumedAt = e.CurrentTime()
	})
	waiter.Activate()

	caller := NewEntity("caller", func(e *Entity) {
		e.Hold(2)
		require.True(t, e.Trigger(waiter))
	})
	caller.Activate()

	s.Run()

	assert.True(t, res.Triggered)
	assert.False(t, res.Interrupted)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 2.0, resumedAt)
}

func TestEntity_WaitFlagExclusivity(t *testing.T) {
	// Property: on resumption from Wait, exactly one flag is observed; a
	// second signal before resumption is refused.
	s := newTestScheduler(t)

	var res WaitResult
	waiter := NewEntity("waiter", func(e *Entity) {
		res = e.Wait()
	})
	waiter.Activate()

	other := NewEntity("other", func(e *Entity) {
		e.Hold(1)
		require.True(t, e.Interrupt(waiter))
		assert.False(t, e.Trigger(waiter), "second signal before resumption must be refused")
		assert.False(t, e.Interrupt(waiter))
	})
	other.Activate()

	s.Run()
	assert.True(t, res.Interrupted)
	assert.False(t, res.Triggered)
}

func TestEntity_TriggerLatchedForNextWait(t *testing.T) {
	// A trigger on an entity that is not waiting latches; its next Wait
	// consumes the latch and returns without suspending.
	s := newTestScheduler(t)

	var res WaitResult
	var resumedAt float64
	late := NewEntity("late", func(e *Entity) {
		e.Hold(5)
		res = e.Wait()
		resumedAt = e.CurrentTime()
	})
	late.Activate()

	early := NewEntity("early", func(e *Entity) {
		e.Hold(1)
		// target is mid-hold: flag latches, the hold is not cut short
		require.True(t, e.Trigger(late))
	})
	early.Activate()

	s.Run()

	assert.True(t, res.Triggered)
	assert.Equal(t, 5.0, resumedAt, "latched trigger must not shorten the hold")
}

func TestEntity_WaitForTimeout(t *testing.T) {
	s := newTestScheduler(t)

	var res WaitResult
	var resumedAt float64
	e := NewEntity("waiter", func(e *Entity) {
		res = e.WaitFor(4.0)
		resumedAt = e.CurrentTime()
	})
	e.Activate()

	s.Run()

	assert.True(t, res.TimedOut)
	assert.False(t, res.Interrupted)
	assert.False(t, res.Triggered)
	assert.Equal(t, 4.0, resumedAt)
}

func TestEntity_WaitForTriggerBeatsTimeout(t *testing.T) {
	s := newTestScheduler(t)

	var res WaitResult
	var resumedAt float64
	waiter := NewEntity("waiter", func(e *Entity) {
		res = e.WaitFor(10.0)
		resumedAt = e.CurrentTime()
	})
	waiter.Activate()

	caller := NewEntity("caller", func(e *Entity) {
		e.Hold(3)
		require.True(t, e.Trigger(waiter))
	})
	caller.Activate()

	s.Run()

	assert.True(t, res.Triggered)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 3.0, resumedAt)
	assert.Equal(t, 3.0, s.Now(), "the timeout record must be cancelled")
}

func TestEntity_WaitForNegativeTimeoutFatal(t *testing.T) {
	s := newTestScheduler(t)
	e := NewEntity("bad", func(e *Entity) {
		e.WaitFor(-1)
	})
	e.Activate()
	assert.Equal(t, KindInvalidParameter, panicKind(s.Run))
}

func TestEntity_InterruptNotLatched(t *testing.T) {
	// Interrupting an idle entity is refused, not latched.
	s := newTestScheduler(t)

	idle := NewEntity("idle", func(e *Entity) {})

	var delivered bool
	caller := NewEntity("caller", func(e *Entity) {
		delivered = e.Interrupt(idle)
	})
	caller.Activate()
	s.Run()

	assert.False(t, delivered)
	assert.Equal(t, StateIdle, idle.State())
}

func TestEntity_InterruptedAccessorIsOneShot(t *testing.T) {
	s := newTestScheduler(t)

	var first, second bool
	a := NewEntity("a", func(e *Entity) {
		e.Hold(10)
		first = e.Interrupted()
		second = e.Interrupted()
	})
	a.Activate()

	b := NewEntity("b", func(e *Entity) {
		e.Hold(1)
		e.Interrupt(a)
	})
	b.Activate()

	s.Run()
	assert.True(t, first, "flag set on first observation")
	assert.False(t, second, "flag cleared after observation")
}
