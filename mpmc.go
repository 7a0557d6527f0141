// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMC is a multi-producer multi-consumer bounded queue.
//
// Every slot carries its own sequence number. A producer verifies the
// target slot's sequence equals the "ready for write" value, CASes the
// tail forward to claim it, writes the data, then advances the sequence
// to "ready for read". Consumption is the mirror image. The sequence
// check makes the algorithm ABA-safe and works with non-distinct values.
//
// This is the only variant with contention on both ends; a goroutine
// that loses a CAS race retries without blocking. Lock-free, no
// starvation guarantee beyond what CAS fairness provides on the
// underlying hardware.
//
// Memory: n slots, one sequence word per slot
type MPMC[T any] struct {
	_        pad
	tail     atomix.Uint64 // Producers CAS here
	_        pad
	head     atomix.Uint64 // Consumers CAS here
	_        pad
	buffer   []seqSlot[T]
	mask     uint64
	capacity uint64
}

// NewMPMC creates a new MPMC queue.
// Capacity rounds up to the next power of 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("qfit: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &MPMC[T]{
		buffer:   make([]seqSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *MPMC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		slot := &q.buffer[tail&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element from the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		slot := &q.buffer[head&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}

// Len returns a best-effort snapshot of the element count.
func (q *MPMC[T]) Len() int {
	return rangeLen(q.head.LoadAcquire(), q.tail.LoadAcquire(), q.capacity)
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *MPMC[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Full reports a best-effort fullness snapshot.
func (q *MPMC[T]) Full() bool {
	return q.Len() == q.Cap()
}
