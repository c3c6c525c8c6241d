package syncore

import (
	"runtime"
	"time"
)

// Semaphore is a counting semaphore whose waiter admission order is
// governed by a WaiterList policy (NewFIFOWaiters or NewPriorityWaiters).
// Release never hands ownership of the count to a waiter directly;
// instead it raises count and then runs the notify-donor protocol: walk
// the waiter list head to tail, try to wake each candidate's Monitor in
// turn, and retry the whole walk if none could be woken and the list is
// still non-empty. A checked Semaphore additionally enforces an upper
// bound, failing Release with an InvalidOp-kind error once count reaches
// that bound.
type Semaphore struct {
	lock FastLock

	count      int
	maxCount   int
	checked    bool
	entryCount int
	waiters    WaiterList
	log        Logger
	name       string
}

// NewSemaphore creates a Semaphore with the given initial permit count and
// waiter-ordering policy. A nil policy defaults to NewFIFOWaiters.
func NewSemaphore(count int, policy WaiterList, opts ...Option) *Semaphore {
	return newSemaphore(count, 0, false, policy, opts...)
}

// NewCheckedSemaphore creates a Semaphore that additionally enforces
// maxCount as an upper bound: Release fails with an InvalidOp-kind error
// once count has reached maxCount.
func NewCheckedSemaphore(count, maxCount int, policy WaiterList, opts ...Option) *Semaphore {
	return newSemaphore(count, maxCount, true, policy, opts...)
}

func newSemaphore(count, maxCount int, checked bool, policy WaiterList, opts ...Option) *Semaphore {
	if policy == nil {
		policy = NewFIFOWaiters()
	}
	o := buildOptions(opts)
	return &Semaphore{
		count: count, maxCount: maxCount, checked: checked, waiters: policy,
		log: o.logger, name: elementName("semaphore", o.name),
	}
}

// Count returns a snapshot of the number of permits currently available
// for immediate acquisition.
func (s *Semaphore) Count() int {
	_ = s.lock.Acquire()
	defer s.lock.Release()
	return s.count
}

// Acquire blocks until a permit is available, or returns an
// Interrupted-kind error if the calling goroutine's wait is interrupted
// first.
func (s *Semaphore) Acquire() error {
	_, err := s.acquire(false, 0)
	return err
}

// TryAcquire attempts to acquire a permit, blocking no longer than
// timeout. It reports (true, nil) on success, (false, nil) if the timeout
// elapsed, and (false, err) if interrupted. A zero timeout performs a
// single non-blocking attempt.
func (s *Semaphore) TryAcquire(timeout time.Duration) (bool, error) {
	return s.acquire(true, timeout)
}

func (s *Semaphore) acquire(bounded bool, timeout time.Duration) (bool, error) {
	_ = s.lock.Acquire()

	if s.count > 0 && s.entryCount == 0 {
		s.count--
		s.lock.Release()
		return true, nil
	}
	if bounded && timeout <= 0 {
		s.lock.Release()
		return false, nil
	}

	w := &waiter{mon: NewMonitor(), thread: CurrentOrNil()}
	s.waiters.push(w)
	s.entryCount++
	s.lock.Release() // inverted scope: released across the wait

	_ = w.mon.Acquire()
	var state MonitorState
	if bounded {
		state = w.mon.wait(timeout)
	} else {
		state = w.mon.wait(0)
	}
	_ = w.mon.Release()

	_ = s.lock.Acquire()
	s.waiters.remove(w) // stickiness cleanup: remove if still present
	s.entryCount--
	if state == StateSignaled {
		s.count--
	}
	s.lock.Release()

	switch state {
	case StateSignaled:
		return true, nil
	case StateInterrupted:
		return false, ErrInterrupted
	case StateTimedOut:
		return false, nil
	default:
		return false, newError(Synchronization, "unexpected monitor state during semaphore acquire")
	}
}

// Release returns a permit to the semaphore, then runs the notify-donor
// protocol to wake one waiter if any are parked.
//
// Release fails with an InvalidOp-kind error, without effect, if the
// Semaphore is checked and count already equals its configured maximum.
func (s *Semaphore) Release() error {
	_ = s.lock.Acquire()
	if s.checked && s.count >= s.maxCount {
		s.lock.Release()
		return newError(InvalidOp, "release would exceed checked semaphore bound of %d", s.maxCount)
	}
	s.count++
	s.lock.Release()

	s.donate()
	return nil
}

// donate runs the notify-donor protocol: repeat the head-to-tail walk
// until either a waiter is woken or the list is empty, yielding between
// unsuccessful walks so a busy Monitor gets a chance to finish whatever
// it is doing.
func (s *Semaphore) donate() {
	for {
		_ = s.lock.Acquire()
		candidates := s.waiters.all()
		donated := false

		for _, w := range candidates {
			ok, _ := w.mon.TryAcquire(0)
			if !ok {
				continue // busy: skip without removing
			}
			s.waiters.remove(w)
			notified := w.mon.notify()
			_ = w.mon.Release()
			if notified {
				donated = true
				break
			}
			// sticky Monitor: the waiter is already leaving for some
			// other reason and has been removed; try the next candidate.
		}

		empty := s.waiters.len() == 0
		s.lock.Release()

		if donated {
			s.log.Debug(s.name + ": donated permit to waiter")
			return
		}
		if empty {
			return
		}
		runtime.Gosched()
	}
}

// Interrupt wakes a goroutine currently parked in this Semaphore's Acquire
// or TryAcquire, causing it to return ErrInterrupted. thread must be the
// ThreadHandle of the goroutine to interrupt, obtained from Register; if
// that goroutine is not currently parked here, Interrupt has no effect.
func (s *Semaphore) Interrupt(thread ThreadHandle) {
	_ = s.lock.Acquire()
	defer s.lock.Release()

	for _, w := range s.waiters.all() {
		if w.thread == thread {
			w.mon.Interrupt()
		}
	}
}

var _ Lockable = (*Semaphore)(nil)
