package sim

import "github.com/simkit/simkit/sim/simset"

// TriggerQueue is a FIFO of entities awaiting a trigger. The usual pattern
// is for an entity to Insert itself and then Wait; a peer later fires
// TriggerFirst or TriggerAll.
type TriggerQueue struct {
	sched *Scheduler
	queue *simset.Head[*Entity]
}

// NewTriggerQueue creates an empty trigger queue.
func NewTriggerQueue() *TriggerQueue {
	s := current
	if s == nil {
		fatalf(KindInvalidState, "NewTriggerQueue", 0, 0, "no scheduler installed")
	}
	return &TriggerQueue{sched: s, queue: simset.NewHead[*Entity]()}
}

// Len returns the number of queued entities.
func (q *TriggerQueue) Len() int { return q.queue.Cardinal() }

// Empty reports whether the queue holds no entities.
func (q *TriggerQueue) Empty() bool { return q.queue.Empty() }

// Insert appends the entity. An entity already in a trigger queue is not
// inserted again (it can wait for only one thing at a time).
func (q *TriggerQueue) Insert(e *Entity) {
	if e == nil || e.queueLink.InList() {
		return
	}
	e.queueLink.Into(q.queue)
}

// Remove pops and returns the head entity without triggering it, or nil if
// the queue is empty.
func (q *TriggerQueue) Remove() *Entity {
	head := q.queue.First()
	if head == nil {
		return nil
	}
	return head.Out().Item()
}

// TriggerFirst removes the head entity and triggers it. Reports false if
// the queue is empty; an empty queue is not an error.
func (q *TriggerQueue) TriggerFirst() bool {
	e := q.Remove()
	if e == nil {
		return false
	}
	q.sched.triggerEntity(e)
	return true
}

// TriggerAll triggers every queued entity in insertion order, iterating a
// snapshot of the queue. Reports false if the queue was empty.
func (q *TriggerQueue) TriggerAll() bool {
	if q.queue.Empty() {
		return false
	}
	for _, e := range q.queue.Items() {
		e.queueLink.Out()
		q.sched.triggerEntity(e)
	}
	return true
}
