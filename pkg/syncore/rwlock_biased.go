package syncore

import "time"

// BiasedReadWriteLock is a writer-biased ReadWriteLock: a reader may enter
// iff no writer is active, but a waiting writer always wins the race
// against waiting readers for the next release, so writers can starve
// readers under sustained contention. This matches the teacher template's
// Release policy of signaling a writer first if one is waiting, and a
// reader only otherwise.
type BiasedReadWriteLock struct {
	lock FastLock

	readCond  *Condition
	writeCond *Condition

	activeReaders  int
	activeWriters  int
	waitingWriters int

	read  *biasedReadLock
	write *biasedWriteLock
}

// NewBiasedReadWriteLock creates an unlocked BiasedReadWriteLock.
func NewBiasedReadWriteLock() *BiasedReadWriteLock {
	l := &BiasedReadWriteLock{}
	l.readCond = NewCondition(&l.lock)
	l.writeCond = NewCondition(&l.lock)
	l.read = &biasedReadLock{l: l}
	l.write = &biasedWriteLock{l: l}
	return l
}

// GetReadLock returns the Lockable view held by any number of readers
// concurrently, as long as no writer is active.
func (l *BiasedReadWriteLock) GetReadLock() Lockable { return l.read }

// GetWriteLock returns the exclusive Lockable view held by at most one
// writer at a time, excluding every reader.
func (l *BiasedReadWriteLock) GetWriteLock() Lockable { return l.write }

func (l *BiasedReadWriteLock) allowReader() bool {
	return l.activeWriters == 0 && l.waitingWriters == 0
}

func (l *BiasedReadWriteLock) allowWriter() bool {
	return l.activeWriters == 0 && l.activeReaders == 0
}

func (l *BiasedReadWriteLock) release() {
	if l.waitingWriters > 0 {
		l.writeCond.Signal()
	} else {
		l.readCond.Broadcast()
	}
}

type biasedReadLock struct{ l *BiasedReadWriteLock }

func (r *biasedReadLock) Acquire() error {
	l := r.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	for !l.allowReader() {
		l.readCond.Wait()
	}
	l.activeReaders++
	return nil
}

func (r *biasedReadLock) TryAcquire(timeout time.Duration) (bool, error) {
	l := r.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	deadline := time.Now().Add(timeout)
	for !l.allowReader() {
		if timeout <= 0 {
			return false, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 || !l.readCond.WaitTimeout(remaining) {
			return false, nil
		}
	}
	l.activeReaders++
	return true, nil
}

func (r *biasedReadLock) Release() error {
	l := r.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	if l.activeReaders == 0 {
		panic(newError(InvalidOp, "release of BiasedReadWriteLock read lock not held"))
	}
	l.activeReaders--
	if l.activeReaders == 0 {
		l.release()
	}
	return nil
}

type biasedWriteLock struct{ l *BiasedReadWriteLock }

func (w *biasedWriteLock) Acquire() error {
	l := w.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	l.waitingWriters++
	for !l.allowWriter() {
		l.writeCond.Wait()
	}
	l.waitingWriters--
	l.activeWriters = 1
	return nil
}

func (w *biasedWriteLock) TryAcquire(timeout time.Duration) (bool, error) {
	l := w.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	l.waitingWriters++
	defer func() { l.waitingWriters-- }()

	deadline := time.Now().Add(timeout)
	for !l.allowWriter() {
		if timeout <= 0 {
			return false, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 || !l.writeCond.WaitTimeout(remaining) {
			return false, nil
		}
	}
	l.activeWriters = 1
	return true, nil
}

func (w *biasedWriteLock) Release() error {
	l := w.l
	_ = l.lock.Acquire()
	defer l.lock.Release()

	if l.activeWriters == 0 {
		panic(newError(InvalidOp, "release of BiasedReadWriteLock write lock not held"))
	}
	l.activeWriters = 0
	l.release()
	return nil
}

var _ ReadWriteLock = (*BiasedReadWriteLock)(nil)
