// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPSC is a multi-producer single-consumer bounded queue with strict
// per-producer FIFO order.
//
// Producers claim slots with a CAS loop on the tail cursor and publish
// each claimed slot by advancing its sequence number with a release
// store. The single consumer owns the head cursor exclusively and only
// observes a slot once its publish is visible, so delivery order equals
// claim order. Enqueue is lock-free (bounded retries under contention),
// Dequeue is wait-free.
//
// Memory: n slots, one sequence word per slot
type MPSC[T any] struct {
	_        pad
	head     atomix.Uint64 // Consumer reads from here
	_        pad
	tail     atomix.Uint64 // Producers CAS here
	_        pad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

// seqSlot pairs an element with the sequence number that synchronizes
// slot claim against slot publish. Padded so adjacent slots do not share
// a cache line.
type seqSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// NewMPSC creates a new MPSC queue.
// Capacity rounds up to the next power of 2.
func NewMPSC[T any](capacity int) *MPSC[T] {
	if capacity < 2 {
		panic("qfit: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &MPSC[T]{
		buffer:   make([]seqSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Returns ErrWouldBlock if the queue is full.
func (q *MPSC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		head := q.head.LoadAcquire()

		if tail >= head+q.capacity {
			return ErrWouldBlock
		}

		slot := &q.buffer[tail&q.mask]
		seq := slot.seq.LoadAcquire()

		if seq == tail {
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if seq < tail {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
// A slot that is claimed but not yet published reads as empty; the
// consumer never skips past it, preserving FIFO order.
func (q *MPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head&q.mask]
	seq := slot.seq.LoadAcquire()

	if seq != head+1 {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.seq.StoreRelease(head + q.capacity)
	q.head.StoreRelease(head + 1)

	return elem, nil
}

// Cap returns the queue capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}

// Len returns a best-effort snapshot of the element count.
func (q *MPSC[T]) Len() int {
	return rangeLen(q.head.LoadAcquire(), q.tail.LoadAcquire(), q.capacity)
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *MPSC[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Full reports a best-effort fullness snapshot.
func (q *MPSC[T]) Full() bool {
	return q.Len() == q.Cap()
}
