// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// msNode is the Michael-Scott chain element. Values are held behind an
// atomic pointer so the winning consumer can detach a value while losing
// consumers may still be reading the slot.
type msNode[T any] struct {
	next atomic.Pointer[msNode[T]]
	data atomic.Pointer[T]
}

// MPMCLinked is an unbounded multi-producer multi-consumer queue, the
// generic fallback for unbounded shapes with more than one consumer.
//
// Michael-Scott algorithm: both ends are CAS-driven and lock-free, and
// either side helps a lagging tail forward, so a stalled goroutine never
// blocks the others. FIFO over the linked order.
type MPMCLinked[T any] struct {
	_    pad
	tail atomic.Pointer[msNode[T]] // Producers CAS forward, may lag the true end
	_    pad
	head atomic.Pointer[msNode[T]] // Consumers CAS past the stub
	_    pad
}

// NewMPMCLinked creates a new unbounded MPMC queue.
func NewMPMCLinked[T any]() *MPMCLinked[T] {
	stub := &msNode[T]{}
	q := &MPMCLinked[T]{}
	q.tail.Store(stub)
	q.head.Store(stub)
	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Never fails; always returns nil.
func (q *MPMCLinked[T]) Enqueue(elem *T) error {
	v := *elem
	n := &msNode[T]{}
	n.data.Store(&v)

	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(tail, n)
				return nil
			}
		} else {
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMCLinked[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}

		if head == tail {
			if next == nil {
				var zero T
				return zero, ErrWouldBlock
			}
			// Tail lags behind a linked node; help it forward
			q.tail.CompareAndSwap(tail, next)
			continue
		}

		// Read the value before swinging head: after the CAS another
		// consumer may already be recycling the node as its stub.
		data := next.data.Load()
		if q.head.CompareAndSwap(head, next) {
			next.data.Store(nil)
			return *data, nil
		}
		sw.Once()
	}
}

// Cap returns -1: the queue is unbounded.
func (q *MPMCLinked[T]) Cap() int {
	return -1
}

// Len returns a best-effort snapshot of the element count.
// Walks the chain: O(n).
func (q *MPMCLinked[T]) Len() int {
	n := 0
	for cur := q.head.Load().next.Load(); cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *MPMCLinked[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}
