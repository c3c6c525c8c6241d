package syncore

import "time"

// CountDownLatch lets any number of goroutines block until a count reaches
// zero, driven by other goroutines calling CountDown. Unlike Barrier it is
// one-shot: once the count reaches zero it stays there, and Await always
// returns immediately from then on. It is the Go rendering of the
// teacher template's Trigger, specialized to a plain countdown instead of
// an arbitrary dependency graph.
type CountDownLatch struct {
	lock  FastLock
	zero  *Condition
	count int
}

// NewCountDownLatch creates a CountDownLatch that releases its waiters
// once CountDown has been called count times. A non-positive count is
// already triggered.
func NewCountDownLatch(count int) *CountDownLatch {
	l := &CountDownLatch{count: count}
	l.zero = NewCondition(&l.lock)
	return l
}

// CountDown decrements the count, waking every blocked Await once it
// reaches zero. Calls past zero have no effect.
func (l *CountDownLatch) CountDown() {
	_ = l.lock.Acquire()
	defer l.lock.Release()

	if l.count <= 0 {
		return
	}
	l.count--
	if l.count == 0 {
		l.zero.Broadcast()
	}
}

// Await blocks until the count reaches zero.
func (l *CountDownLatch) Await() error {
	_ = l.lock.Acquire()
	defer l.lock.Release()

	for l.count > 0 {
		l.zero.Wait()
	}
	return nil
}

// AwaitTimeout is Await, bounded by timeout; it returns a Timeout-kind
// error if the count has not reached zero when the timeout elapses.
func (l *CountDownLatch) AwaitTimeout(timeout time.Duration) error {
	_ = l.lock.Acquire()
	defer l.lock.Release()

	deadline := time.Now().Add(timeout)
	for l.count > 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 || !l.zero.WaitTimeout(remaining) {
			return ErrTimeout
		}
	}
	return nil
}

// Count returns the current count.
func (l *CountDownLatch) Count() int {
	_ = l.lock.Acquire()
	defer l.lock.Release()
	return l.count
}
