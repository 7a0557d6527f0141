// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/qfit"
)

// =============================================================================
// Bounded Ring Variants - Basic Operations
// =============================================================================

// TestSPSCBasic tests basic SPSC operations: FIFO order, capacity
// rounding, full and empty boundaries.
func TestSPSCBasic(t *testing.T) {
	q := qfit.NewSPSC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty on fresh queue: got false, want true")
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	if !q.Full() {
		t.Fatal("Full after filling: got false, want true")
	}
	if q.Len() != 4 {
		t.Fatalf("Len after filling: got %d, want 4", q.Len())
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, qfit.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestRingBasic runs the shared contract over every bounded ring variant.
func TestRingBasic(t *testing.T) {
	variants := map[string]qfit.Queue[int]{
		"MPSC": qfit.NewMPSC[int](3),
		"SPMC": qfit.NewSPMC[int](3),
		"MPMC": qfit.NewMPMC[int](3),
	}

	for name, q := range variants {
		t.Run(name, func(t *testing.T) {
			if q.Cap() != 4 {
				t.Fatalf("Cap: got %d, want 4", q.Cap())
			}

			for i := range 4 {
				v := i + 100
				if err := q.Enqueue(&v); err != nil {
					t.Fatalf("Enqueue(%d): %v", i, err)
				}
			}

			v := 999
			if err := q.Enqueue(&v); !errors.Is(err, qfit.ErrWouldBlock) {
				t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
			}
			if q.Len() != 4 {
				t.Fatalf("Len: got %d, want 4", q.Len())
			}

			for i := range 4 {
				val, err := q.Dequeue()
				if err != nil {
					t.Fatalf("Dequeue(%d): %v", i, err)
				}
				if val != i+100 {
					t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
				}
			}

			if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
				t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
			}
			if !q.IsEmpty() {
				t.Fatal("IsEmpty after drain: got false, want true")
			}
		})
	}
}

// TestRingWrapAround exercises cursor wrap-around well past one full
// cycle of the ring, alternating fill and drain.
func TestRingWrapAround(t *testing.T) {
	q := qfit.NewMPMC[int](4)

	enq, deq := 0, 0
	for round := range 64 {
		for range 3 {
			v := enq
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d: Enqueue(%d): %v", round, v, err)
			}
			enq++
		}
		for range 3 {
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d: Dequeue: %v", round, err)
			}
			if val != deq {
				t.Fatalf("round %d: got %d, want %d", round, val, deq)
			}
			deq++
		}
	}
}

// =============================================================================
// End-to-End Selection Example
// =============================================================================

// TestBoundedSpscEndToEnd follows the canonical bounded SPSC walk-through:
// fill capacity 4, observe rejection, drain in order, observe emptiness,
// then accept again.
func TestBoundedSpscEndToEnd(t *testing.T) {
	q := qfit.FromSpec[int](qfit.Bounded(qfit.One, qfit.One, 4))

	for i := 1; i <= 4; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 5
	if err := q.Enqueue(&v); !errors.Is(err, qfit.ErrWouldBlock) {
		t.Fatalf("Enqueue(5) on full: got %v, want ErrWouldBlock", err)
	}

	for i := 1; i <= 4; i++ {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if val != i {
			t.Fatalf("Dequeue: got %d, want %d", val, i)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}

	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue(5) after drain: %v", err)
	}
}

// =============================================================================
// Linked Variants - Basic Operations
// =============================================================================

// TestLinkedBasic runs the shared contract over every unbounded variant.
func TestLinkedBasic(t *testing.T) {
	variants := map[string]qfit.Queue[int]{
		"SPSCLinked":    qfit.NewSPSCLinked[int](),
		"MPSCLinked":    qfit.NewMPSCLinked[int](),
		"MPSCLinkedCAS": qfit.NewMPSCLinkedCAS[int](),
		"MPMCLinked":    qfit.NewMPMCLinked[int](),
	}

	for name, q := range variants {
		t.Run(name, func(t *testing.T) {
			if q.Cap() != -1 {
				t.Fatalf("Cap: got %d, want -1 (unbounded)", q.Cap())
			}
			if !q.IsEmpty() {
				t.Fatal("IsEmpty on fresh queue: got false, want true")
			}
			if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
				t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
			}

			const n = 1000
			for i := range n {
				v := i
				if err := q.Enqueue(&v); err != nil {
					t.Fatalf("Enqueue(%d): %v", i, err)
				}
			}
			if q.Len() != n {
				t.Fatalf("Len: got %d, want %d", q.Len(), n)
			}

			for i := range n {
				val, err := q.Dequeue()
				if err != nil {
					t.Fatalf("Dequeue(%d): %v", i, err)
				}
				if val != i {
					t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
				}
			}
			if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
				t.Fatalf("Dequeue after drain: got %v, want ErrWouldBlock", err)
			}
		})
	}
}

// =============================================================================
// Compound Variant - Basic Operations
// =============================================================================

// TestCompoundBasic verifies single-goroutine conservation: everything
// offered comes back exactly once, with no ordering claim across shards.
func TestCompoundBasic(t *testing.T) {
	q := qfit.NewCompound[int](64)

	if q.Shards() < 1 {
		t.Fatalf("Shards: got %d, want >= 1", q.Shards())
	}
	if q.Cap() < 64 {
		t.Fatalf("Cap: got %d, want >= 64", q.Cap())
	}

	const n = 64
	seen := make([]int, n)
	for i := range n {
		v := i
		// A full shard rejects the offer; retrying re-rolls the shard
		// hint, so room elsewhere is eventually found.
		for q.Enqueue(&v) != nil {
		}
	}
	if q.Len() != n {
		t.Fatalf("Len: got %d, want %d", q.Len(), n)
	}

	for range n {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if val < 0 || val >= n {
			t.Fatalf("Dequeue: value out of range: %d", val)
		}
		seen[val]++
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("value %d seen %d times, want exactly once", i, c)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, qfit.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty after drain: got false, want true")
	}
}

// TestCapacityRounding verifies power-of-two rounding on every bounded
// constructor.
func TestCapacityRounding(t *testing.T) {
	cases := []struct{ in, want int }{
		{2, 2},
		{3, 4},
		{4, 4},
		{1000, 1024},
		{1024, 1024},
	}
	for _, c := range cases {
		if got := qfit.NewSPSC[int](c.in).Cap(); got != c.want {
			t.Errorf("SPSC cap %d: got %d, want %d", c.in, got, c.want)
		}
		if got := qfit.NewMPMC[int](c.in).Cap(); got != c.want {
			t.Errorf("MPMC cap %d: got %d, want %d", c.in, got, c.want)
		}
	}
}

// TestCapacityPanics verifies the documented panic on capacity < 2.
func TestCapacityPanics(t *testing.T) {
	for name, build := range map[string]func(){
		"SPSC":     func() { qfit.NewSPSC[int](1) },
		"MPSC":     func() { qfit.NewMPSC[int](1) },
		"SPMC":     func() { qfit.NewSPMC[int](0) },
		"MPMC":     func() { qfit.NewMPMC[int](-3) },
		"Compound": func() { qfit.NewCompound[int](1) },
		"Bounded":  func() { qfit.Bounded(qfit.One, qfit.One, 1) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic on capacity < 2")
				}
			}()
			build()
		})
	}
}
