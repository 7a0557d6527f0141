// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

// Blocking composes a non-blocking queue with a take and a put strategy,
// adding Take and Put operations that may suspend the caller.
//
// The composition is static: the wrapper holds the queue and both
// strategies as ordinary fields, so dispatch is resolved by the compiler
// rather than any runtime stitching. The non-blocking Enqueue/Dequeue
// surface remains available and interoperates with blocked goroutines:
// every successful enqueue signals the take strategy and every
// successful dequeue signals the put strategy, regardless of which entry
// point performed it.
//
// Take and Put carry no deadline parameter; a caller wanting a timeout
// must race the wait against an external timer.
//
// Construct with [NewBlocking] or [NewBlockingWith].
type Blocking[T any] struct {
	queue Queue[T]
	take  TakeStrategy[T]
	put   PutStrategy[T]
}

// Take removes and returns an element, suspending the caller while the
// queue is empty.
func (b *Blocking[T]) Take() T {
	elem := b.take.WaitFor(b.queue.Dequeue)
	b.put.Signal()
	return elem
}

// Put adds an element, suspending or yielding while the queue is full.
// Never fails on unbounded queues.
func (b *Blocking[T]) Put(elem *T) {
	b.put.WaitOffer(b.queue.Enqueue, elem)
	b.take.Signal()
}

// Enqueue adds an element without blocking.
// Returns ErrWouldBlock if the queue is full.
func (b *Blocking[T]) Enqueue(elem *T) error {
	if err := b.queue.Enqueue(elem); err != nil {
		return err
	}
	b.take.Signal()
	return nil
}

// Dequeue removes and returns an element without blocking.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (b *Blocking[T]) Dequeue() (T, error) {
	elem, err := b.queue.Dequeue()
	if err != nil {
		return elem, err
	}
	b.put.Signal()
	return elem, nil
}

// Cap returns the underlying queue capacity, or -1 for unbounded.
func (b *Blocking[T]) Cap() int {
	return b.queue.Cap()
}

// Len returns a best-effort snapshot of the element count.
func (b *Blocking[T]) Len() int {
	return b.queue.Len()
}

// IsEmpty reports a best-effort emptiness snapshot.
func (b *Blocking[T]) IsEmpty() bool {
	return b.queue.IsEmpty()
}
