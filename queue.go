//////////////////////////////////////////////////////////////////////////////
//
// Bounded frame queue with drop-oldest overflow
//
// Copyright 2026 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package camsim

import "sync"

// WaitStatus is the outcome of a blocking Wait call on the queue.
type WaitStatus int

const (
	// HasFrame means the queue was observed non-empty. A sibling consumer
	// may still win the race to Pop, so callers must treat a subsequent
	// empty Pop as a signal to wait again.
	HasFrame WaitStatus = iota

	// Drained is terminal: the queue is empty and no more frames are
	// coming (producer finished or run cancelled). Consumers exit on it.
	Drained
)

// PushResult reports what happened to a pushed frame. Eviction is a normal,
// counted outcome of the shedding policy, not an error.
type PushResult struct {
	// Evicted is true when the push displaced the oldest queued frame.
	Evicted bool

	// EvictedSeq is the sequence number of the displaced frame. Only
	// meaningful when Evicted is true.
	EvictedSeq uint64
}

/*
FrameQueue is a fixed-capacity FIFO shared between one producer and N
consumers. It is the single synchronization point of the pipeline.

Overflow policy is backpressure-by-shedding: when full, Push evicts the
oldest queued frame to make room and reports the eviction. Push therefore
never blocks, and memory stays bounded at capacity frames.

Shutdown protocol: MarkProducerFinished and MarkCancelled are monotonic
one-way transitions, and both broadcast to every blocked waiter. A plain
Push only signals one waiter (one item, one consumer), but terminal
transitions must reach all consumers at once or the last waiter on an empty
queue would sleep forever. Wait re-evaluates its predicate under the lock
after every wakeup, so spurious or raced wakeups are harmless.

A cancelled queue that still holds frames keeps serving HasFrame; consumers
drain the remainder and only then observe Drained.
*/
type FrameQueue struct {
	mu   sync.Mutex
	cond *sync.Cond

	items    []Frame
	capacity int

	finished  bool // producer has stopped; no further pushes
	cancelled bool // run aborted; producer stops, queue drains
}

// NewFrameQueue creates a queue holding at most capacity frames.
// Capacity must be at least 1; the coordinator validates this before
// construction.
func NewFrameQueue(capacity int) *FrameQueue {
	q := &FrameQueue{
		items:    make([]Frame, 0, capacity),
		capacity: capacity,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a frame, evicting the oldest queued frame first if the queue
// is full. Wakes one waiting consumer.
func (q *FrameQueue) Push(f Frame) PushResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	var res PushResult
	if len(q.items) == q.capacity {
		res.Evicted = true
		res.EvictedSeq = q.items[0].Seq
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, f)

	// One new item satisfies at most one waiter.
	q.cond.Signal()
	return res
}

// Pop removes and returns the oldest frame. The second return value is false
// when the queue is empty; Pop never blocks.
func (q *FrameQueue) Pop() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Frame{}, false
	}
	f := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return f, true
}

// Wait blocks until the queue is non-empty or terminal. The condition wait
// releases the queue lock while suspended and reacquires it on wake.
func (q *FrameQueue) Wait() WaitStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.finished && !q.cancelled {
		q.cond.Wait()
	}
	if len(q.items) > 0 {
		return HasFrame
	}
	return Drained
}

// MarkProducerFinished records that no further frames will be pushed and
// wakes every blocked consumer. Idempotent.
func (q *FrameQueue) MarkProducerFinished() {
	q.mu.Lock()
	q.finished = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// MarkCancelled records an aborted run and wakes every blocked consumer.
// Idempotent.
func (q *FrameQueue) MarkCancelled() {
	q.mu.Lock()
	q.cancelled = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len returns the number of queued frames.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue holds no frames.
func (q *FrameQueue) Empty() bool {
	return q.Len() == 0
}
