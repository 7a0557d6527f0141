// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SPMC is a single-producer multi-consumer bounded queue.
//
// The mirror image of [MPSC]: the single producer owns the tail cursor
// exclusively and publishes each slot with a release store of its
// sequence number; consumers compete for the head cursor with CAS and
// only claim a slot whose publish is already visible. Enqueue is
// wait-free, Dequeue is lock-free.
//
// Memory: n slots, one sequence word per slot
type SPMC[T any] struct {
	_        pad
	head     atomix.Uint64 // Consumers CAS here
	_        pad
	tail     atomix.Uint64 // Producer writes here
	_        pad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

// NewSPMC creates a new SPMC queue.
// Capacity rounds up to the next power of 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	if capacity < 2 {
		panic("qfit: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &SPMC[T]{
		buffer:   make([]seqSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue (single producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPMC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	slot := &q.buffer[tail&q.mask]
	seq := slot.seq.LoadAcquire()

	if seq != tail {
		return ErrWouldBlock
	}

	slot.data = *elem
	slot.seq.StoreRelease(tail + 1)
	q.tail.StoreRelease(tail + 1)

	return nil
}

// Dequeue removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()

		if head >= tail {
			var zero T
			return zero, ErrWouldBlock
		}

		slot := &q.buffer[head&q.mask]
		seq := slot.seq.LoadAcquire()

		if seq == head+1 {
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if seq < head+1 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *SPMC[T]) Cap() int {
	return int(q.capacity)
}

// Len returns a best-effort snapshot of the element count.
func (q *SPMC[T]) Len() int {
	return rangeLen(q.head.LoadAcquire(), q.tail.LoadAcquire(), q.capacity)
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *SPMC[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Full reports a best-effort fullness snapshot.
func (q *SPMC[T]) Full() bool {
	return q.Len() == q.Cap()
}
