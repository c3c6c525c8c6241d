package syncore

import "time"

// Mutex is a non-reentrant mutual exclusion lock whose waiters are parked
// on a Monitor each, admitted in the order given by policy. Unlike
// FastLock, which spins until the lock is free, Mutex uses the same donation
// protocol as Semaphore, so lock ownership is handed to a specific waiter
// rather than left to be raced for.
type Mutex struct {
	sem *Semaphore
}

// NewMutex creates an unlocked Mutex. A nil policy defaults to FIFO
// admission order.
func NewMutex(policy WaiterList, opts ...Option) *Mutex {
	return &Mutex{sem: NewSemaphore(1, policy, opts...)}
}

// Acquire blocks until the lock is held by the calling goroutine.
func (m *Mutex) Acquire() error { return m.sem.Acquire() }

// TryAcquire attempts to acquire the lock, blocking no longer than
// timeout.
func (m *Mutex) TryAcquire(timeout time.Duration) (bool, error) { return m.sem.TryAcquire(timeout) }

// Release releases the lock.
//
// Release panics if called while the Mutex is not held; a Mutex built on
// top of a plain (unchecked) Semaphore cannot distinguish "not held" from
// "held by someone else" on its own, so this only catches the fully
// unlocked case, surfaced as a panic carrying an InvalidOp-kind *Error, as
// sync.Mutex also refuses a double unlock.
func (m *Mutex) Release() error {
	_ = m.sem.lock.Acquire()
	held := m.sem.count == 0
	m.sem.lock.Release()
	if !held {
		panic(newError(InvalidOp, "release of unlocked Mutex"))
	}
	return m.sem.Release()
}

// RecursiveMutex is a Mutex that may be reacquired by the goroutine that
// already holds it, tracked by ThreadHandle identity. Acquiring it from a
// goroutine with no registered ThreadHandle (see Register) is treated as
// always-foreign, so such goroutines can still use it, just without
// recursion.
//
// owner and depth are bookkeeping shared between whichever goroutine holds
// the lock and whichever goroutine is currently contending for it (the
// owner-check in Acquire/TryAcquire races with the owner-clear in Release),
// so both fields are guarded by state, a FastLock, the same way Semaphore
// and the Queue family guard their own bookkeeping. state is always
// released before a call into mu, which may block.
type RecursiveMutex struct {
	mu    Mutex
	state FastLock
	owner ThreadHandle
	depth int
}

// NewRecursiveMutex creates an unlocked RecursiveMutex.
func NewRecursiveMutex(policy WaiterList, opts ...Option) *RecursiveMutex {
	return &RecursiveMutex{mu: *NewMutex(policy, opts...)}
}

// Acquire blocks until the lock is held by the calling goroutine, or
// increments the recursion depth if the calling goroutine already holds
// it. It returns an Interrupted-kind error if the wait for a foreign
// holder to release is interrupted.
func (m *RecursiveMutex) Acquire() error {
	self := CurrentOrNil()

	_ = m.state.Acquire()
	if self != nil && m.owner == self {
		m.depth++
		m.state.Release()
		return nil
	}
	m.state.Release()

	if err := m.mu.Acquire(); err != nil {
		return err
	}

	_ = m.state.Acquire()
	m.owner = self
	m.depth = 1
	m.state.Release()
	return nil
}

// TryAcquire is the bounded-wait form of Acquire.
func (m *RecursiveMutex) TryAcquire(timeout time.Duration) (bool, error) {
	self := CurrentOrNil()

	_ = m.state.Acquire()
	if self != nil && m.owner == self {
		m.depth++
		m.state.Release()
		return true, nil
	}
	m.state.Release()

	ok, err := m.mu.TryAcquire(timeout)
	if err != nil || !ok {
		return false, err
	}

	_ = m.state.Acquire()
	m.owner = self
	m.depth = 1
	m.state.Release()
	return true, nil
}

// Release decrements the recursion depth, releasing the underlying lock
// once it reaches zero.
//
// Release panics with an InvalidOp-kind *Error if called by a goroutine
// that is not the current owner; releasing a lock you do not hold is a
// programming error, not a recoverable runtime condition.
func (m *RecursiveMutex) Release() error {
	self := CurrentOrNil()

	_ = m.state.Acquire()
	if m.depth == 0 || m.owner != self {
		m.state.Release()
		panic(newError(InvalidOp, "release of RecursiveMutex by non-owner"))
	}
	m.depth--
	unlock := m.depth == 0
	if unlock {
		m.owner = nil
	}
	m.state.Release()

	if unlock {
		return m.mu.Release()
	}
	return nil
}
