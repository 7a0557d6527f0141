// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import "strconv"

// Arity declares how many goroutines act on one side of a queue.
type Arity uint8

const (
	// One declares exactly one goroutine on that side.
	One Arity = iota
	// Many declares an arbitrary number of goroutines on that side.
	Many
)

// String returns "one" or "many".
func (a Arity) String() string {
	if a == One {
		return "one"
	}
	return "many"
}

// Ordering declares the delivery-order requirement of a queue.
type Ordering uint8

const (
	// FIFO requires first-in-first-out delivery. For multi-producer queues
	// this means each producer's relative order is preserved; interleaving
	// across producers is unconstrained.
	FIFO Ordering = iota
	// Relaxed drops cross-producer ordering in exchange for reduced
	// contention. Only meaningful with Many producers; with One producer
	// the selection ignores it.
	Relaxed
)

// String returns "fifo" or "relaxed".
func (o Ordering) String() string {
	if o == FIFO {
		return "fifo"
	}
	return "relaxed"
}

// Spec is an immutable description of a queue's contention profile:
// producer arity, consumer arity, boundedness, and ordering requirement.
//
// A Spec is constructed once with [Bounded] or [Unbounded] and never
// mutated; [Spec.WithRelaxed] returns a modified copy. [FromSpec] maps a
// Spec to the cheapest algorithm that satisfies it.
//
// Example:
//
//	// Bounded event funnel: many producers, one consumer, strict order
//	q := qfit.FromSpec[Event](qfit.Bounded(qfit.Many, qfit.One, 4096))
//
//	// Same shape, ordering relaxed for scalability
//	q := qfit.FromSpec[Event](qfit.Bounded(qfit.Many, qfit.One, 4096).WithRelaxed())
type Spec struct {
	producers Arity
	consumers Arity
	capacity  int // 0 = unbounded
	ordering  Ordering
}

// Bounded creates a Spec for a capacity-limited queue.
// Capacity rounds up to the next power of 2 at construction of the queue.
//
// Panics if capacity < 2.
func Bounded(producers, consumers Arity, capacity int) Spec {
	if capacity < 2 {
		panic("qfit: capacity must be >= 2")
	}
	return Spec{producers: producers, consumers: consumers, capacity: capacity}
}

// Unbounded creates a Spec for a queue without a capacity limit.
func Unbounded(producers, consumers Arity) Spec {
	return Spec{producers: producers, consumers: consumers}
}

// WithRelaxed returns a copy of s with Relaxed ordering.
// Relaxed only affects selection for bounded multi-producer shapes.
func (s Spec) WithRelaxed() Spec {
	s.ordering = Relaxed
	return s
}

// Producers returns the producer arity.
func (s Spec) Producers() Arity { return s.producers }

// Consumers returns the consumer arity.
func (s Spec) Consumers() Arity { return s.consumers }

// Capacity returns the requested capacity, or 0 when unbounded.
func (s Spec) Capacity() int { return s.capacity }

// IsBounded reports whether the spec requests a capacity limit.
func (s Spec) IsBounded() bool { return s.capacity > 0 }

// Ordering returns the ordering requirement.
func (s Spec) Ordering() Ordering { return s.ordering }

// IsSPSC reports a single-producer single-consumer shape.
func (s Spec) IsSPSC() bool { return s.producers == One && s.consumers == One }

// IsMPSC reports a multi-producer single-consumer shape.
func (s Spec) IsMPSC() bool { return s.producers == Many && s.consumers == One }

// IsSPMC reports a single-producer multi-consumer shape.
func (s Spec) IsSPMC() bool { return s.producers == One && s.consumers == Many }

// IsMPMC reports a multi-producer multi-consumer shape.
func (s Spec) IsMPMC() bool { return s.producers == Many && s.consumers == Many }

// String returns a compact description like "mpsc cap=4096 fifo".
func (s Spec) String() string {
	shape := "mpmc"
	switch {
	case s.IsSPSC():
		shape = "spsc"
	case s.IsMPSC():
		shape = "mpsc"
	case s.IsSPMC():
		shape = "spmc"
	}
	if !s.IsBounded() {
		return shape + " unbounded " + s.ordering.String()
	}
	return shape + " cap=" + strconv.Itoa(s.capacity) + " " + s.ordering.String()
}
