// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

// Queue is the combined producer-consumer interface for a concurrent queue.
//
// Queue provides non-blocking Enqueue and Dequeue operations. Both return
// ErrWouldBlock when they cannot proceed (queue full or empty); neither
// ever suspends the calling goroutine. For blocking Take/Put semantics,
// compose a queue with wait strategies via [NewBlocking].
//
// Len and IsEmpty are best-effort snapshots: under concurrent access the
// reported value may be stale by the time the caller observes it. They are
// intended for monitoring and heuristics, never for synchronization.
//
// Example:
//
//	q := qfit.FromSpec[int](qfit.Bounded(qfit.Many, qfit.Many, 1024))
//
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue
//	}
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the queue capacity, or -1 for unbounded queues.
	Cap() int
	// Len returns a best-effort snapshot of the element count.
	// Inherently racy under concurrency; unbounded queues walk the
	// node chain, which costs O(n).
	Len() int
	// IsEmpty reports a best-effort emptiness snapshot.
	IsEmpty() bool
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the
// call boundary. The queue stores a copy of the pointed-to value, so the
// original can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	// Unbounded queues never return an error.
	//
	// Thread safety depends on the selected algorithm: single-producer
	// variants must only ever be fed by one goroutine. Violating the
	// arity contract is undefined behavior, not a detected error.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied out of the queue). The vacated
// slot or node is cleared so referenced objects become collectable.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	//
	// Thread safety depends on the selected algorithm: single-consumer
	// variants must only ever be drained by one goroutine. Violating the
	// arity contract is undefined behavior, not a detected error.
	Dequeue() (T, error)
}
