// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// MPSCLinked is an unbounded multi-producer single-consumer queue built
// from dynamically allocated nodes.
//
// Producers extend the chain with a swap-then-link protocol: atomically
// exchange the tail reference for the new node, then link the predecessor
// to it. Between those two steps a consumer can observe a temporarily
// broken chain (the node exists but its predecessor is not linked yet)
// and must spin briefly waiting for the link. Enqueue is wait-free
// (exactly one swap, no retries); Dequeue is lock-free.
//
// FIFO order of successfully linked nodes is preserved: the swap order
// on tail is the delivery order.
//
// [MPSCLinkedCAS] is the alternative protocol that never exposes an
// unlinked node at the price of a CAS retry loop under contention.
type MPSCLinked[T any] struct {
	_    pad
	tail atomic.Pointer[node[T]] // Producers swap here
	_    pad
	head atomic.Pointer[node[T]] // Consumer-advanced stub
	_    pad
}

// NewMPSCLinked creates a new unbounded MPSC queue.
func NewMPSCLinked[T any]() *MPSCLinked[T] {
	stub := &node[T]{}
	q := &MPSCLinked[T]{}
	q.tail.Store(stub)
	q.head.Store(stub)
	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Never fails; always returns nil.
func (q *MPSCLinked[T]) Enqueue(elem *T) error {
	n := &node[T]{data: *elem}
	prev := q.tail.Swap(n)
	prev.next.Store(n) // Link; until this lands the chain is broken at prev
	return nil
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSCLinked[T]) Dequeue() (T, error) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		if head == q.tail.Load() {
			var zero T
			return zero, ErrWouldBlock
		}
		// A producer has swapped tail but not linked yet; the link is
		// one store away, so wait for it rather than reporting empty.
		sw := spin.Wait{}
		for next == nil {
			sw.Once()
			next = head.next.Load()
		}
	}

	elem := next.data
	var zero T
	next.data = zero
	q.head.Store(next)
	return elem, nil
}

// Cap returns -1: the queue is unbounded.
func (q *MPSCLinked[T]) Cap() int {
	return -1
}

// Len returns a best-effort snapshot of the element count.
// Walks the chain: O(n). A concurrently broken chain truncates the count.
func (q *MPSCLinked[T]) Len() int {
	return chainLen(q.head.Load())
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *MPSCLinked[T]) IsEmpty() bool {
	head := q.head.Load()
	return head.next.Load() == nil && head == q.tail.Load()
}

// MPSCLinkedCAS is an unbounded multi-producer single-consumer queue
// whose producers append with a CAS retry loop instead of swap-then-link.
//
// The new node is linked before the tail reference moves, so a consumer
// never observes a broken chain and Dequeue never spins. The cost is an
// unbounded (in principle) producer retry count under contention, where
// [MPSCLinked] completes in exactly one atomic exchange.
type MPSCLinkedCAS[T any] struct {
	_    pad
	tail atomic.Pointer[node[T]] // Producers CAS forward, may lag the true end
	_    pad
	head atomic.Pointer[node[T]] // Consumer-advanced stub
	_    pad
}

// NewMPSCLinkedCAS creates a new unbounded CAS-append MPSC queue.
func NewMPSCLinkedCAS[T any]() *MPSCLinkedCAS[T] {
	stub := &node[T]{}
	q := &MPSCLinkedCAS[T]{}
	q.tail.Store(stub)
	q.head.Store(stub)
	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Never fails; always returns nil.
func (q *MPSCLinkedCAS[T]) Enqueue(elem *T) error {
	n := &node[T]{data: *elem}
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				// Linked; swing tail, losing the race is fine
				q.tail.CompareAndSwap(tail, n)
				return nil
			}
		} else {
			// Tail lags; help it forward before retrying
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSCLinkedCAS[T]) Dequeue() (T, error) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := next.data
	var zero T
	next.data = zero
	// Retired nodes keep their next link intact: a lagging producer may
	// still traverse them while helping the tail forward.
	q.head.Store(next)
	return elem, nil
}

// Cap returns -1: the queue is unbounded.
func (q *MPSCLinkedCAS[T]) Cap() int {
	return -1
}

// Len returns a best-effort snapshot of the element count.
// Walks the chain: O(n).
func (q *MPSCLinkedCAS[T]) Len() int {
	return chainLen(q.head.Load())
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *MPSCLinkedCAS[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}
