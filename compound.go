// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"math/rand/v2"
	"runtime"
)

// Compound is a sharded multi-producer single-consumer bounded queue
// that trades strict cross-producer ordering for scalability.
//
// The queue is an ordered array of independent [MPSC] ring shards with no
// shared cross-shard ordering: producers pick a shard from a cheap per-P
// random hint, the consumer scans shards round-robin. Because shard hints
// can collide (goroutines carry no stable identity), shards are
// multi-producer-safe rings rather than strictly single-producer ones.
//
// Enqueue fails when the selected shard is full even if other shards have
// room; under skewed load a shard can be starved of service for a scan
// round. Both are accepted trade-offs for eliminating the single
// contended tail cursor. Selected by [FromSpec] for bounded Many-producer
// One-consumer specs with Relaxed ordering.
type Compound[T any] struct {
	shards []*MPSC[T]
	mask   uint64
	_      pad
	next   uint64 // Consumer's round-robin position, consumer-owned
	_      pad
}

// NewCompound creates a new sharded queue.
//
// Shard count is GOMAXPROCS rounded to a power of two, shrunk until
// every shard keeps a capacity of at least 2; per-shard capacity rounds
// up so the total is never below the requested capacity.
//
// Panics if capacity < 2.
func NewCompound[T any](capacity int) *Compound[T] {
	if capacity < 2 {
		panic("qfit: capacity must be >= 2")
	}

	shards := roundToPow2(runtime.GOMAXPROCS(0))
	for shards > 1 && capacity/shards < 2 {
		shards >>= 1
	}
	shardCap := roundToPow2((capacity + shards - 1) / shards)
	if shardCap < 2 {
		shardCap = 2
	}

	q := &Compound[T]{
		shards: make([]*MPSC[T], shards),
		mask:   uint64(shards - 1),
	}
	for i := range q.shards {
		q.shards[i] = NewMPSC[T](shardCap)
	}
	return q
}

// Enqueue adds an element to one shard (multiple producers safe).
// Returns ErrWouldBlock if that shard is full, even when other shards
// have room.
func (q *Compound[T]) Enqueue(elem *T) error {
	return q.shards[rand.Uint64()&q.mask].Enqueue(elem)
}

// Dequeue removes and returns an element (single consumer only).
// Scans shards round-robin starting after the last drained one and
// returns the first available element. Returns (zero-value,
// ErrWouldBlock) only when every shard observed empty.
func (q *Compound[T]) Dequeue() (T, error) {
	for i := uint64(0); i <= q.mask; i++ {
		pos := (q.next + i) & q.mask
		if elem, err := q.shards[pos].Dequeue(); err == nil {
			q.next = (pos + 1) & q.mask
			return elem, nil
		}
	}
	var zero T
	return zero, ErrWouldBlock
}

// Cap returns the total capacity across shards.
func (q *Compound[T]) Cap() int {
	return len(q.shards) * q.shards[0].Cap()
}

// Len returns a best-effort snapshot: the sum of shard occupancies.
func (q *Compound[T]) Len() int {
	n := 0
	for _, s := range q.shards {
		n += s.Len()
	}
	return n
}

// IsEmpty reports a best-effort emptiness snapshot.
func (q *Compound[T]) IsEmpty() bool {
	for _, s := range q.shards {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Full reports a best-effort snapshot of whether every shard is full.
// A single full shard already rejects its producers' offers.
func (q *Compound[T]) Full() bool {
	for _, s := range q.shards {
		if !s.Full() {
			return false
		}
	}
	return true
}

// Shards returns the shard count.
func (q *Compound[T]) Shards() int {
	return len(q.shards)
}
