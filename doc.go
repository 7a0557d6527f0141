// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package qfit provides concurrent FIFO queues selected by contention
// profile.
//
// Instead of naming a concrete implementation, callers describe their
// requirements — producer arity, consumer arity, boundedness, ordering
// strictness — as an immutable [Spec], and [FromSpec] maps it to the
// queue algorithm with the minimum synchronization that profile allows:
//
//   - SPSC: Single-Producer Single-Consumer (wait-free ring / linked)
//   - MPSC: Multi-Producer Single-Consumer (ring, sharded, or linked)
//   - SPMC: Single-Producer Multi-Consumer (ring)
//   - MPMC: Multi-Producer Multi-Consumer (ring / linked fallback)
//
// # Quick Start
//
// Spec-driven selection:
//
//	q := qfit.FromSpec[Event](qfit.Bounded(qfit.One, qfit.One, 1024))   // → SPSC ring
//	q := qfit.FromSpec[Event](qfit.Bounded(qfit.Many, qfit.One, 4096))  // → MPSC ring
//	q := qfit.FromSpec[Event](qfit.Unbounded(qfit.Many, qfit.One))     // → MPSC linked
//
// Direct constructors when the shape is fixed at the call site:
//
//	q := qfit.NewSPSC[Event](1024)
//	q := qfit.NewMPMC[*Request](4096)
//
// # Basic Usage
//
// All queues share the same non-blocking interface:
//
//	q := qfit.FromSpec[int](qfit.Bounded(qfit.Many, qfit.Many, 1024))
//
//	value := 42
//	err := q.Enqueue(&value)
//	if qfit.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if qfit.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// Plain Enqueue/Dequeue never suspend the caller and return within a
// bounded number of retries. Every algorithm is wait-free or lock-free;
// none acquires a mutual-exclusion lock.
//
// # Ordering
//
// Queues selected for FIFO ordering preserve each producer's relative
// order; interleaving across producers is unconstrained. A bounded
// Many-producer One-consumer spec with [Spec.WithRelaxed] routes to the
// sharded [Compound] queue instead, which drops cross-shard ordering to
// eliminate the single contended tail cursor:
//
//	q := qfit.FromSpec[Event](qfit.Bounded(qfit.Many, qfit.One, 4096).WithRelaxed())
//
// # Blocking Queues
//
// Wrapping a queue with wait strategies adds Take/Put operations that
// may suspend the caller; the non-blocking surface remains available on
// the wrapper and the two interoperate without missed wakeups:
//
//	b, err := qfit.NewBlocking[Job](qfit.Bounded(qfit.Many, qfit.One, 1024))
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    for {
//	        job := b.Take() // Suspends while empty
//	        job.Run()
//	    }
//	}()
//
//	j := Job{...}
//	b.Put(&j) // Yields while full
//
// Explicit strategies compose via [NewBlockingWith]; a strategy that
// rejects the spec (for example [SCParkTake] with Many consumers) fails
// at construction with [ErrIncompatibleStrategy] — never a silent
// downgrade, never a runtime hazard.
//
// # Error Handling
//
// Full and empty are ordinary control-flow values, not failures: queues
// return [ErrWouldBlock], sourced from [code.hybscloud.com/iox] for
// ecosystem consistency.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !qfit.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// # Capacity and Length
//
// Bounded capacity rounds up to the next power of 2 so index masking
// replaces modulo division; minimum capacity is 2, panic below that.
// Unbounded queues report Cap() == -1.
//
// Len and IsEmpty are best-effort snapshots only: accurate counts in
// lock-free algorithms would require cross-core synchronization the hot
// paths deliberately avoid. Never use them for synchronization.
//
// # Thread Safety
//
// Operations are safe within the spec's arity: feeding a single-producer
// variant from two goroutines or draining a single-consumer variant from
// two is a documented precondition violation, deliberately not checked
// at runtime — the cost of an arity check on every operation is the
// price the fast variants exist to avoid. Violations yield undefined
// interleaving, not a detected error.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic memory orderings across separate variables,
// as the sequence-number protocols here do. The algorithms are correct;
// tests incompatible with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions. Linked-node variants use stdlib typed atomic pointers so
// node chains stay visible to the garbage collector.
package qfit
