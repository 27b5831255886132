// Package dirty provides the wake primitive that tells a render worker
// its output is stale.
//
// A Signal is a single-slot dirty flag paired with a condition variable:
// Raise sets the flag if it is not already set and wakes the waiter, Wait
// blocks until the flag is set and clears it on the way out. Raises that
// happen before the waiter wakes collapse into one pending pass. That is
// safe because every pass recomputes from the current editor state.
//
// Close wakes every waiter for good. A closed Signal never blocks again,
// so a worker that re-enters Wait after shutdown returns immediately.
package dirty

import "sync"

// Signal is a coalescing wake-up flag for exactly one consumer.
type Signal struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
	closed  bool
	raises  uint64
}

// NewSignal creates a signal. When pending is true the first Wait returns
// immediately.
func NewSignal(pending bool) *Signal {
	s := &Signal{pending: pending}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Raise marks work as due and wakes the waiter. Raising an already
// pending signal only counts the raise.
func (s *Signal) Raise() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raises++
	if s.pending {
		return
	}
	s.pending = true
	s.cond.Signal()
}

// Wait blocks until the signal is pending or closed. It consumes the
// pending flag and reports whether the signal is still open.
func (s *Signal) Wait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.pending && !s.closed {
		s.cond.Wait()
	}
	s.pending = false
	return !s.closed
}

// Pending reports whether a raise has not been consumed yet.
func (s *Signal) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Close wakes all waiters. Every later Wait returns false at once.
// Close is idempotent.
func (s *Signal) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (s *Signal) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Raises returns the number of Raise calls so far.
func (s *Signal) Raises() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raises
}
