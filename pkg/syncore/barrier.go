package syncore

import "time"

// Barrier lets a fixed number of goroutines wait for each other to reach a
// common point before any of them proceed, then resets itself for reuse.
// If a party fails to arrive within a bounded wait, or Break is called
// directly, every other party parked at the barrier wakes with a
// Canceled-kind error instead of proceeding normally - the Go rendering of
// the teacher template's BrokenBarrierException.
type Barrier struct {
	lock    FastLock
	arrived *Condition

	parties    int
	count      int
	generation int
	broken     bool
	action     func()
}

// NewBarrier creates a Barrier for the given number of parties. action, if
// non-nil, runs once when the last party arrives, before the others are
// released.
func NewBarrier(parties int, action func()) *Barrier {
	b := &Barrier{parties: parties, action: action}
	b.arrived = NewCondition(&b.lock)
	return b
}

// Await blocks until all parties have called Await, then returns the index
// (parties-1 down to 0) this call was assigned, in arrival order. If the
// barrier is or becomes broken while waiting, Await returns a Canceled-kind
// error and the barrier remains broken for all other current and future
// waiters until Reset is called.
func (b *Barrier) Await() (int, error) {
	return b.await(0)
}

// AwaitTimeout is Await, bounded by timeout. Timing out breaks the barrier
// for every other waiting party, matching the all-or-nothing semantics of
// a broken barrier.
func (b *Barrier) AwaitTimeout(timeout time.Duration) (int, error) {
	return b.await(timeout)
}

func (b *Barrier) await(timeout time.Duration) (int, error) {
	_ = b.lock.Acquire()
	defer b.lock.Release()

	if b.broken {
		return 0, ErrCanceled
	}

	index := b.parties - b.count - 1
	b.count++

	if b.count == b.parties {
		if b.action != nil {
			b.action()
		}
		b.count = 0
		b.generation++
		b.arrived.Broadcast()
		return index, nil
	}

	generation := b.generation
	if timeout <= 0 {
		for b.generation == generation && !b.broken {
			b.arrived.Wait()
		}
	} else {
		deadline := time.Now().Add(timeout)
		for b.generation == generation && !b.broken {
			remaining := time.Until(deadline)
			if remaining <= 0 || !b.arrived.WaitTimeout(remaining) {
				b.breakLocked()
				return 0, ErrTimeout
			}
		}
	}

	if b.broken {
		return 0, ErrCanceled
	}
	return index, nil
}

// Break marks the barrier permanently broken, waking every waiting party
// with a Canceled-kind error.
func (b *Barrier) Break() {
	_ = b.lock.Acquire()
	defer b.lock.Release()
	b.breakLocked()
}

func (b *Barrier) breakLocked() {
	b.broken = true
	b.arrived.Broadcast()
}

// Reset clears a broken barrier back to an empty, unbroken generation.
// Reset is a programming hazard if any party is still parked in Await; it
// is meant for use once a caller has confirmed every party observed the
// break.
func (b *Barrier) Reset() {
	_ = b.lock.Acquire()
	defer b.lock.Release()
	b.broken = false
	b.count = 0
}

// Parties returns the number of goroutines required to trip the barrier.
func (b *Barrier) Parties() int {
	return b.parties
}
