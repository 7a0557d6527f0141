// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import "fmt"

// FromSpec returns the cheapest queue algorithm satisfying the spec.
//
// Pure and deterministic: no side effects, no hidden state, the same
// spec always selects the same algorithm. Decision order is boundedness,
// then producer arity, then consumer arity, then ordering; ordering only
// affects the bounded multi-producer single-consumer case, where Relaxed
// routes to the sharded [Compound] queue and FIFO to the [MPSC] ring.
//
// Selection:
//
//	bounded   spsc              → SPSC ring (wait-free)
//	bounded   mpsc fifo         → MPSC ring
//	bounded   mpsc relaxed      → Compound (sharded)
//	bounded   spmc              → SPMC ring
//	bounded   mpmc              → MPMC ring
//	unbounded spsc              → SPSCLinked
//	unbounded mpsc              → MPSCLinked (swap-then-link)
//	unbounded spmc/mpmc         → MPMCLinked (generic fallback)
//
// No specialized unbounded multi-consumer variant exists, so those
// shapes fall back to the generic Michael-Scott queue.
func FromSpec[T any](s Spec) Queue[T] {
	if s.IsBounded() {
		switch {
		case s.IsSPSC():
			return NewSPSC[T](s.capacity)
		case s.IsMPSC():
			if s.ordering == Relaxed {
				return NewCompound[T](s.capacity)
			}
			return NewMPSC[T](s.capacity)
		case s.IsSPMC():
			return NewSPMC[T](s.capacity)
		default:
			return NewMPMC[T](s.capacity)
		}
	}

	switch {
	case s.IsSPSC():
		return NewSPSCLinked[T]()
	case s.IsMPSC():
		return NewMPSCLinked[T]()
	default:
		return NewMPMCLinked[T]()
	}
}

// NewBlocking composes the queue selected by [FromSpec] with default
// wait strategies: [SCParkTake] for One-consumer specs, [MCParkTake]
// otherwise, and [YieldPut] for the put side.
func NewBlocking[T any](s Spec) (*Blocking[T], error) {
	var take TakeStrategy[T]
	if s.Consumers() == One {
		take = NewSCParkTake[T]()
	} else {
		take = NewMCParkTake[T]()
	}
	return NewBlockingWith[T](s, take, NewYieldPut[T]())
}

// NewBlockingWith composes the queue selected by [FromSpec] with
// explicit wait strategies.
//
// Both strategies are validated against the spec first; an incompatible
// pairing fails with [ErrIncompatibleStrategy] rather than silently
// degrading to a different strategy or algorithm than the caller asked
// for.
func NewBlockingWith[T any](s Spec, take TakeStrategy[T], put PutStrategy[T]) (*Blocking[T], error) {
	if !take.SupportsSpec(s) {
		return nil, fmt.Errorf("%w: take strategy rejects %v", ErrIncompatibleStrategy, s)
	}
	if !put.SupportsSpec(s) {
		return nil, fmt.Errorf("%w: put strategy rejects %v", ErrIncompatibleStrategy, s)
	}
	return &Blocking[T]{
		queue: FromSpec[T](s),
		take:  take,
		put:   put,
	}, nil
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// rangeLen clamps a racy (head, tail) cursor snapshot into [0, capacity].
func rangeLen(head, tail, capacity uint64) int {
	if tail <= head {
		return 0
	}
	if d := tail - head; d < capacity {
		return int(d)
	}
	return int(capacity)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
