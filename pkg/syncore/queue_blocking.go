package syncore

import "time"

// BlockingQueue is an unbounded FIFO queue. Add never blocks; Next blocks
// while the queue is empty and not canceled.
type BlockingQueue[T any] struct {
	lock     FastLock
	notEmpty *Condition

	storage  storage[T]
	canceled bool
	log      Logger
}

// NewBlockingQueue creates an empty BlockingQueue.
func NewBlockingQueue[T any](opts ...Option) *BlockingQueue[T] {
	q := &BlockingQueue[T]{log: buildOptions(opts).logger}
	q.notEmpty = NewCondition(&q.lock)
	return q
}

// Add appends item to the queue and wakes one blocked Next.
//
// Add fails with a Canceled-kind error, without effect, if the queue has
// been canceled.
func (q *BlockingQueue[T]) Add(item T) error {
	_ = q.lock.Acquire()
	defer q.lock.Release()

	if q.canceled {
		return ErrCanceled
	}
	q.storage.push(item)
	q.notEmpty.Signal()
	return nil
}

// AddTimeout is Add; unbounded queues never block on Add, so timeout is
// unused, present only to satisfy the shared Queue contract.
func (q *BlockingQueue[T]) AddTimeout(item T, timeout time.Duration) error {
	return q.Add(item)
}

// Next removes and returns the value at the head of the queue, blocking
// while it is empty.
//
// Next fails with a Canceled-kind error if the queue is or becomes
// canceled while waiting.
func (q *BlockingQueue[T]) Next() (T, error) {
	_ = q.lock.Acquire()
	defer q.lock.Release()

	for q.storage.len() == 0 && !q.canceled {
		q.notEmpty.Wait()
	}
	var zero T
	if q.storage.len() == 0 {
		return zero, ErrCanceled
	}
	return q.storage.pop(), nil
}

// NextTimeout is like Next, bounded by timeout; it fails with a
// Timeout-kind error if no value arrives in time.
func (q *BlockingQueue[T]) NextTimeout(timeout time.Duration) (T, error) {
	_ = q.lock.Acquire()
	defer q.lock.Release()

	deadline := time.Now().Add(timeout)
	for q.storage.len() == 0 && !q.canceled {
		remaining := time.Until(deadline)
		if remaining <= 0 || !q.notEmpty.WaitTimeout(remaining) {
			var zero T
			return zero, ErrTimeout
		}
	}
	var zero T
	if q.storage.len() == 0 {
		return zero, ErrCanceled
	}
	return q.storage.pop(), nil
}

// Cancel marks the queue canceled, waking every blocked Next with
// ErrCanceled. Cancel is idempotent.
func (q *BlockingQueue[T]) Cancel() {
	_ = q.lock.Acquire()
	defer q.lock.Release()

	if q.canceled {
		return
	}
	q.canceled = true
	q.notEmpty.Broadcast()
}

// IsCanceled reports whether Cancel has been called.
func (q *BlockingQueue[T]) IsCanceled() bool {
	_ = q.lock.Acquire()
	defer q.lock.Release()
	return q.canceled
}

// Size returns the number of values currently queued.
func (q *BlockingQueue[T]) Size() int {
	_ = q.lock.Acquire()
	defer q.lock.Release()
	return q.storage.len()
}

// Acquire, TryAcquire and Release expose the queue's own serializing lock,
// so BlockingQueue satisfies Lockable the way the queue family's FastLock
// member always has.
func (q *BlockingQueue[T]) Acquire() error                           { return q.lock.Acquire() }
func (q *BlockingQueue[T]) TryAcquire(t time.Duration) (bool, error) { return q.lock.TryAcquire(t) }
func (q *BlockingQueue[T]) Release() error                           { return q.lock.Release() }

var _ Queue[int] = (*BlockingQueue[int])(nil)
