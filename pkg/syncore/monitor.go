package syncore

import (
	"sync"
	"time"
)

// MonitorState is the result a Monitor's wait leaves behind for the next
// caller to observe. A wait that returns for a reason other than a
// matching notify (interrupt, timeout) leaves its result sticky until the
// Monitor's next wait begins; this is what lets Release's donation loop
// recognize a Monitor it already woke and move on to the next waiter
// instead of double-dispatching.
type MonitorState int

const (
	StateIdle MonitorState = iota
	StateSignaled
	StateInterrupted
	StateTimedOut
)

// Monitor is a single-waiter wait/notify kernel: it pairs a Lockable
// (Acquire/Release/TryAcquire) with an internal sticky signal a donor can
// set without the waiter being parked yet. Semaphore (and the Mutex types
// built on it) uses one Monitor per waiter instead of a shared
// sync.Cond, so Release can hand the resource to exactly one waiter by
// name rather than broadcasting and hoping.
type Monitor struct {
	mu   sync.Mutex
	cond *sync.Cond

	acquired bool

	pendingSignal bool
	interrupted   bool
	lastResult    MonitorState
}

// NewMonitor creates an unacquired Monitor.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Acquire blocks until the Monitor's lock is held by the calling goroutine.
// A Monitor's own lock has no associated ThreadHandle, so Acquire never
// returns an error; it exists to satisfy Lockable.
func (m *Monitor) Acquire() error {
	m.mu.Lock()
	for m.acquired {
		m.cond.Wait()
	}
	m.acquired = true
	m.mu.Unlock()
	return nil
}

// TryAcquire attempts to acquire the Monitor's lock without blocking beyond
// timeout. A zero or negative timeout performs a single non-blocking
// attempt.
func (m *Monitor) TryAcquire(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.acquired {
		if timeout <= 0 {
			return false, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		if !condWaitTimeout(m.cond, &m.mu, remaining) {
			return false, nil
		}
	}
	m.acquired = true
	return true, nil
}

// Release releases the Monitor's lock.
func (m *Monitor) Release() error {
	m.mu.Lock()
	m.acquired = false
	m.cond.Signal()
	m.mu.Unlock()
	return nil
}

// wait parks the calling goroutine on this Monitor's internal condition
// until notify is called on it, the bound elapses, or interrupt is called
// on it. It is unexported: wait/notify are the donation protocol Semaphore
// uses internally, not a general-purpose
// condition variable (use Condition for that).
//
// wait resets any sticky result left by a previous wait before parking, so
// a Monitor is ready to be donated to again as soon as its owner calls
// wait. Per spec.md §4.1, wait "atomically releases the Monitor and
// sleeps ... on return the Monitor is re-acquired": the caller already
// holds the Monitor (via Acquire/TryAcquire) when it calls wait, so wait
// itself clears acquired before parking — letting a donor's TryAcquire
// reach this Monitor while its owner is blocked — and waits for acquired
// to fall free again and reclaims it before returning, so the caller still
// holds the Monitor afterward exactly as it did on entry.
func (m *Monitor) wait(timeout time.Duration) MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastResult = StateIdle

	if m.interrupted {
		m.interrupted = false
		m.lastResult = StateInterrupted
		return StateInterrupted
	}
	if m.pendingSignal {
		m.pendingSignal = false
		m.lastResult = StateSignaled
		return StateSignaled
	}

	m.acquired = false
	m.cond.Broadcast()

	state := StateTimedOut
	if timeout <= 0 {
		for !m.pendingSignal && !m.interrupted {
			m.cond.Wait()
		}
		state = m.consumeWake()
	} else {
		deadline := time.Now().Add(timeout)
		for !m.pendingSignal && !m.interrupted {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				break
			}
			condWaitTimeout(m.cond, &m.mu, remaining)
		}
		if m.pendingSignal || m.interrupted {
			state = m.consumeWake()
		}
	}

	// Re-acquire: wait out a donor currently between its own TryAcquire and
	// Release before reclaiming the slot for the returning caller.
	for m.acquired {
		m.cond.Wait()
	}
	m.acquired = true

	m.lastResult = state
	return state
}

// consumeWake consumes whichever of pendingSignal/interrupted woke wait,
// preferring interrupted when both are set (spec.md §7: "INTERRUPTED
// always wins over TIMEOUT when both conditions occur in the same wait" —
// the same priority applies between interrupted and signaled).
func (m *Monitor) consumeWake() MonitorState {
	if m.interrupted {
		m.interrupted = false
		return StateInterrupted
	}
	m.pendingSignal = false
	return StateSignaled
}

// notify attempts to deliver a wakeup to this Monitor. It reports false,
// without effect, if the Monitor already has an unconsumed sticky result
// (it was already donated to, interrupted, or timed out, and nothing has
// called wait since) so a donor never clobbers or double-counts a wakeup.
func (m *Monitor) notify() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingSignal || m.interrupted || m.lastResult == StateInterrupted || m.lastResult == StateTimedOut {
		return false
	}
	m.pendingSignal = true
	m.cond.Broadcast()
	return true
}

// Interrupt wakes a goroutine parked in wait with StateInterrupted. It is
// idempotent: interrupting a Monitor that has not yet been waited on marks
// the interrupt sticky, matching notify's sticky-result rule.
func (m *Monitor) Interrupt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interrupted = true
	m.cond.Broadcast()
}

// condWaitTimeout waits on cond, bounded by timeout, returning false if the
// timeout elapsed. mu must already be held by the caller; sync.Cond has no
// native timeout, so a timer callback taking the same mutex and
// broadcasting is the standard way to bound a Cond.Wait.
func condWaitTimeout(cond *sync.Cond, mu sync.Locker, timeout time.Duration) bool {
	timedOut := false
	timer := time.AfterFunc(timeout, func() {
		mu.Lock()
		timedOut = true
		cond.Broadcast()
		mu.Unlock()
	})
	defer timer.Stop()

	cond.Wait()
	return !timedOut
}
