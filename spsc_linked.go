// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import "sync/atomic"

// node is a singly linked chain element shared by the unbounded queues.
//
// Links are stdlib atomic pointers rather than atomix scalars: the GC must
// be able to trace live nodes, which a uintptr representation would hide.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	data T
}

// SPSCLinked is an unbounded single-producer single-consumer queue built
// from dynamically allocated nodes.
//
// The chain always contains at least one stub node: head points at the
// stub, head.next at the oldest live element. Because each reference has
// exactly one writer, release/acquire stores suffice and no CAS is used
// on either side. Both operations are wait-free.
//
// A consumed node's only remaining reference was the head pointer, now
// advanced past it, so reclamation is left to the garbage collector.
type SPSCLinked[T any] struct {
	_    pad
	head atomic.Pointer[node[T]] // Consumer-advanced stub
	_    pad
	tail *node[T] // Producer-owned last linked node
	_    pad
}

// NewSPSCLinked creates a new unbounded SPSC queue.
func NewSPSCLinked[T any]() *SPSCLinked[T] {
	stub := &node[T]{}
	q := &SPSCLinked[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Enqueue adds an element to the queue (producer only).
// Never fails; always returns nil.
func (q *SPSCLinked[T]) Enqueue(elem *T) error {
	n := &node[T]{data: *elem}
	q.tail.next.Store(n) // Publish to the consumer
	q.tail = n
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSCLinked[T]) Dequeue() (T, error) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := next.data
	var zero T
	next.data = zero // The consumed node becomes the new stub
	q.head.Store(next)
	return elem, nil
}

// Cap returns -1: the queue is unbounded.
func (q *SPSCLinked[T]) Cap() int {
	return -1
}

// Len returns a best-effort snapshot of the element count.
// Walks the chain: O(n).
func (q *SPSCLinked[T]) Len() int {
	return chainLen(q.head.Load())
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *SPSCLinked[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}

// chainLen counts live nodes reachable from the stub. The snapshot is
// racy: concurrent enqueues and dequeues may be partially observed.
func chainLen[T any](stub *node[T]) int {
	n := 0
	for cur := stub.next.Load(); cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}
