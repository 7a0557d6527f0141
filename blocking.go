// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qfit

import (
	"sync"

	"code.hybscloud.com/iox"
)

// TakeStrategy turns a non-blocking Dequeue into a blocking take.
//
// A strategy declares via SupportsSpec which contention profiles it can
// serve; [NewBlockingWith] rejects an incompatible pairing at
// construction time, so a mismatch can never surface as a runtime
// hazard.
type TakeStrategy[T any] interface {
	// WaitFor attempts poll directly, covering the common case of an
	// already-available element without suspending. While poll reports
	// empty, it suspends the calling goroutine until signaled, re-polling
	// on each wake since spurious wakeups are expected.
	WaitFor(poll func() (T, error)) T

	// Signal wakes a suspended consumer, if any. Invoked by the other
	// end after every successful enqueue; the queue's own release-store
	// publish combined with the wake-channel or monitor handoff
	// guarantees the published element is visible to the woken waiter.
	Signal()

	// SupportsSpec reports whether the strategy is safe for the spec.
	SupportsSpec(s Spec) bool
}

// PutStrategy turns a non-blocking Enqueue into a blocking put.
type PutStrategy[T any] interface {
	// WaitOffer retries offer until it succeeds, suspending or yielding
	// between attempts according to the strategy's policy.
	WaitOffer(offer func(*T) error, elem *T)

	// Signal notifies the strategy that capacity was freed. Invoked by
	// the other end after every successful dequeue; polling strategies
	// may ignore it.
	Signal()

	// SupportsSpec reports whether the strategy is safe for the spec.
	SupportsSpec(s Spec) bool
}

// SCParkTake is the single-consumer take strategy.
//
// The one-token wake channel holds the identity of at most one waiting
// consumer, the direct rendition of a parked-thread slot. Signal always
// deposits the token after the queue's publish, so a consumer that
// re-polled empty and then parked is woken without a lost-wakeup window;
// a stale token merely causes one spurious re-poll.
//
// Rejects Many-consumer specs: a second concurrent waiter would race for
// the single token.
type SCParkTake[T any] struct {
	wake chan struct{}
}

// NewSCParkTake creates the single-consumer park strategy.
func NewSCParkTake[T any]() *SCParkTake[T] {
	return &SCParkTake[T]{wake: make(chan struct{}, 1)}
}

// WaitFor blocks the calling goroutine (single consumer only) until poll
// yields an element.
func (s *SCParkTake[T]) WaitFor(poll func() (T, error)) T {
	if elem, err := poll(); err == nil {
		return elem
	}
	for {
		<-s.wake
		if elem, err := poll(); err == nil {
			return elem
		}
	}
}

// Signal wakes the parked consumer, if any. Non-blocking: when a token
// is already pending the pending one stands in for this signal.
func (s *SCParkTake[T]) Signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SupportsSpec accepts One-consumer specs only.
func (s *SCParkTake[T]) SupportsSpec(spec Spec) bool {
	return spec.Consumers() == One
}

// MCParkTake is the multi-consumer take strategy.
//
// A plain monitor: waiting consumers queue on a condition variable and
// the OS scheduler arbitrates among them, so the strategy itself carries
// no per-waiter state. Each signal wakes one waiter, which re-polls
// under the lock. Compatible with every spec, at the price of taking the
// mutex on the signal path.
type MCParkTake[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	waiters int
}

// NewMCParkTake creates the multi-consumer park strategy.
func NewMCParkTake[T any]() *MCParkTake[T] {
	s := &MCParkTake[T]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// WaitFor blocks the calling goroutine until poll yields an element.
func (s *MCParkTake[T]) WaitFor(poll func() (T, error)) T {
	if elem, err := poll(); err == nil {
		return elem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if elem, err := poll(); err == nil {
			return elem
		}
		s.waiters++
		s.cond.Wait()
		s.waiters--
	}
}

// Signal wakes one waiting consumer, if any.
func (s *MCParkTake[T]) Signal() {
	s.mu.Lock()
	if s.waiters > 0 {
		s.cond.Signal()
	}
	s.mu.Unlock()
}

// SupportsSpec accepts every spec.
func (s *MCParkTake[T]) SupportsSpec(Spec) bool {
	return true
}

// YieldPut is the default put strategy: retry the non-blocking offer
// with cooperative-yield backoff rather than parking.
//
// The policy reflects the assumption that producers are few relative to
// how quickly a consumer drains, so capacity reappears within a few
// yields and parking machinery would cost more than it saves.
type YieldPut[T any] struct{}

// NewYieldPut creates the yielding put strategy.
func NewYieldPut[T any]() *YieldPut[T] {
	return &YieldPut[T]{}
}

// WaitOffer retries offer with [iox.Backoff] until it succeeds.
func (*YieldPut[T]) WaitOffer(offer func(*T) error, elem *T) {
	backoff := iox.Backoff{}
	for offer(elem) != nil {
		backoff.Wait()
	}
}

// Signal is a no-op: the backoff loop polls for freed capacity.
func (*YieldPut[T]) Signal() {}

// SupportsSpec accepts every spec.
func (*YieldPut[T]) SupportsSpec(Spec) bool {
	return true
}
