package sim

import "container/heap"

// eventRecord is one activation entry: the sole link between the scheduler
// and a process. Ordering is (wakeTime ASC, prio ASC, seq ASC); seq is a
// monotonic insertion counter, so ties in wakeTime dispatch strictly FIFO.
// prio is 0 except for ActivateBefore/ActivateAfter relative scheduling.
type eventRecord struct {
	wakeTime float64
	prio     int
	seq      uint64
	proc     *Process
	index    int // position in the heap, maintained by Swap
}

// eventQueue is a min-heap of activation records with at most one record
// per process. The byProc index supports O(log n) removal for cancellation
// and re-activation.
type eventQueue struct {
	items  []*eventRecord
	byProc map[*Process]*eventRecord
}

func newEventQueue() *eventQueue {
	return &eventQueue{byProc: make(map[*Process]*eventRecord)}
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.wakeTime != b.wakeTime {
		return a.wakeTime < b.wakeTime
	}
	if a.prio != b.prio {
		return a.prio < b.prio
	}
	return a.seq < b.seq
}

func (q *eventQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *eventQueue) Push(x any) {
	rec := x.(*eventRecord)
	rec.index = len(q.items)
	q.items = append(q.items, rec)
}

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	rec := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return rec
}

// insert adds a record, replacing any existing record for the same process.
func (q *eventQueue) insert(rec *eventRecord) {
	q.remove(rec.proc)
	q.byProc[rec.proc] = rec
	heap.Push(q, rec)
}

// popMin removes and returns the earliest record, or nil if empty.
func (q *eventQueue) popMin() *eventRecord {
	if len(q.items) == 0 {
		return nil
	}
	rec := heap.Pop(q).(*eventRecord)
	delete(q.byProc, rec.proc)
	return rec
}

// peek returns the earliest record without removing it.
func (q *eventQueue) peek() *eventRecord {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// lookup returns the record for p, or nil.
func (q *eventQueue) lookup(p *Process) *eventRecord {
	return q.byProc[p]
}

// remove cancels the record for p. Reports whether one existed.
func (q *eventQueue) remove(p *Process) bool {
	rec, ok := q.byProc[p]
	if !ok {
		return false
	}
	heap.Remove(q, rec.index)
	delete(q.byProc, p)
	return true
}

// clear drops every record.
func (q *eventQueue) clear() {
	q.items = nil
	q.byProc = make(map[*Process]*eventRecord)
}
