package sim

import "container/heap"

// Emission is one scheduled sink firing, ordered by the flip count at
// which it next fires rather than by wall-clock time — the sampler has no
// wall clock of its own, only a monotonically increasing count of
// completed+failed flips.
type Emission interface {
	// AtFlip is the flip count this emission should next fire at.
	AtFlip() int64
	// Fire runs the emission against the engine and returns the next
	// Emission to (re-)enqueue, or nil to stop recurring.
	Fire(e *Engine) Emission
}

// EmissionQueue is a container/heap-ordered min-queue of pending
// Emissions, keyed by flip count rather than timestamp.
type EmissionQueue []Emission

func (q EmissionQueue) Len() int            { return len(q) }
func (q EmissionQueue) Less(i, j int) bool  { return q[i].AtFlip() < q[j].AtFlip() }
func (q EmissionQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *EmissionQueue) Push(x any)         { *q = append(*q, x.(Emission)) }
func (q *EmissionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// NewEmissionQueue returns an empty, heap-initialised queue.
func NewEmissionQueue() *EmissionQueue {
	q := &EmissionQueue{}
	heap.Init(q)
	return q
}

// Schedule pushes an Emission onto the queue.
func (q *EmissionQueue) Schedule(em Emission) {
	heap.Push(q, em)
}

// RunDue fires every Emission whose AtFlip is <= the engine's current flip
// count (FlipCompleted+FlipFailed), re-scheduling whatever each Fire call
// returns. Called once per Step from the driving loop (cmd/root.go).
func (q *EmissionQueue) RunDue(e *Engine) {
	now := e.FlipCompleted + e.FlipFailed
	for q.Len() > 0 && (*q)[0].AtFlip() <= now {
		em := heap.Pop(q).(Emission)
		if next := em.Fire(e); next != nil {
			heap.Push(q, next)
		}
	}
}
