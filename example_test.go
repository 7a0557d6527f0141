// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that move data through atomix concurrency
// primitives. These trigger false positives with Go's race detector
// because atomix atomic operations appear as regular memory accesses to
// the detector. The examples are correct; they're excluded from race
// testing.

package qfit_test

import (
	"fmt"
	"sort"
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/qfit"
)

// ExampleFromSpec demonstrates spec-driven selection for a pipeline stage.
func ExampleFromSpec() {
	// One producer, one consumer, bounded: selects the wait-free SPSC ring
	q := qfit.FromSpec[int](qfit.Bounded(qfit.One, qfit.One, 8))

	for i := 1; i <= 5; i++ {
		v := i * 10
		q.Enqueue(&v)
	}

	for range 5 {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleFromSpec_relaxed demonstrates the ordering trade-off: a relaxed
// multi-producer funnel routes to the sharded compound queue.
func ExampleFromSpec_relaxed() {
	spec := qfit.Bounded(qfit.Many, qfit.One, 256).WithRelaxed()
	q := qfit.FromSpec[int](spec)

	var wg sync.WaitGroup
	for p := range 4 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			backoff := iox.Backoff{}
			for i := range 8 {
				v := id*10 + i
				for q.Enqueue(&v) != nil {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}
	wg.Wait()

	// No cross-shard ordering claim: sort before printing the count
	var got []int
	for {
		v, err := q.Dequeue()
		if err != nil {
			break
		}
		got = append(got, v)
	}
	sort.Ints(got)
	fmt.Println(len(got), got[0], got[len(got)-1])

	// Output:
	// 32 0 37
}

// ExampleNewBlocking demonstrates blocking hand-off between goroutines.
func ExampleNewBlocking() {
	b, err := qfit.NewBlocking[string](qfit.Bounded(qfit.Many, qfit.One, 4))
	if err != nil {
		panic(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 3 {
			fmt.Println(b.Take()) // Suspends while empty
		}
	}()

	for _, s := range []string{"first", "second", "third"} {
		v := s
		b.Put(&v)
	}
	<-done

	// Output:
	// first
	// second
	// third
}

// ExampleNewBlockingWith demonstrates the construction-time strategy
// compatibility check.
func ExampleNewBlockingWith() {
	// A single-consumer take strategy rejects a multi-consumer spec
	spec := qfit.Bounded(qfit.Many, qfit.Many, 16)
	_, err := qfit.NewBlockingWith[int](spec, qfit.NewSCParkTake[int](), qfit.NewYieldPut[int]())
	fmt.Println(qfit.IsSemantic(err), err != nil)

	// Output:
	// false true
}
