package syncore

import "time"

// FairReadWriteLock is a ReadWriteLock built from a single serializing
// FastLock and one Condition. Readers take the mutex just long enough to
// increment a reader count and release it again; writers hold the mutex
// for their entire critical section, parking on the condition while any
// reader is active. Fairness among waiters of either kind falls out of the
// underlying mutex's own acquisition order rather than from any ordering
// logic of its own, unlike BiasedReadWriteLock's explicit writer
// preference.
type FairReadWriteLock struct {
	lock    FastLock
	drained *Condition

	readers int

	read  *fairReadLock
	write *fairWriteLock
}

// NewFairReadWriteLock creates an unlocked FairReadWriteLock.
func NewFairReadWriteLock() *FairReadWriteLock {
	l := &FairReadWriteLock{}
	l.drained = NewCondition(&l.lock)
	l.read = &fairReadLock{l: l}
	l.write = &fairWriteLock{l: l}
	return l
}

// GetReadLock returns the Lockable view held by any number of readers
// concurrently.
func (l *FairReadWriteLock) GetReadLock() Lockable { return l.read }

// GetWriteLock returns the exclusive Lockable view held by at most one
// writer at a time.
func (l *FairReadWriteLock) GetWriteLock() Lockable { return l.write }

type fairReadLock struct{ l *FairReadWriteLock }

func (r *fairReadLock) Acquire() error {
	l := r.l
	if err := l.lock.Acquire(); err != nil {
		return err
	}
	l.readers++
	return l.lock.Release()
}

func (r *fairReadLock) TryAcquire(timeout time.Duration) (bool, error) {
	l := r.l
	ok, err := l.lock.TryAcquire(timeout)
	if err != nil || !ok {
		return ok, err
	}
	l.readers++
	return true, l.lock.Release()
}

func (r *fairReadLock) Release() error {
	l := r.l
	if err := l.lock.Acquire(); err != nil {
		return err
	}
	defer l.lock.Release()

	if l.readers == 0 {
		panic(newError(InvalidOp, "release of FairReadWriteLock read lock not held"))
	}
	l.readers--
	if l.readers == 0 {
		l.drained.Signal()
	}
	return nil
}

type fairWriteLock struct{ l *FairReadWriteLock }

func (w *fairWriteLock) Acquire() error {
	l := w.l
	if err := l.lock.Acquire(); err != nil {
		return err
	}
	for l.readers > 0 {
		l.drained.Wait()
	}
	return nil
}

func (w *fairWriteLock) TryAcquire(timeout time.Duration) (bool, error) {
	l := w.l
	ok, err := l.lock.TryAcquire(timeout)
	if err != nil || !ok {
		return ok, err
	}

	deadline := time.Now().Add(timeout)
	for l.readers > 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 || !l.drained.WaitTimeout(remaining) {
			l.lock.Release()
			return false, nil
		}
	}
	return true, nil
}

func (w *fairWriteLock) Release() error {
	return w.l.lock.Release()
}

var _ ReadWriteLock = (*FairReadWriteLock)(nil)
