package syncore

import "time"

// Queue is the contract shared by BlockingQueue, BoundedQueue and
// MonitoredQueue: a FIFO of values that blocks Next on empty and wakes
// every blocked Add/Next with ErrCanceled once Cancel is called.
type Queue[T any] interface {
	Lockable

	Add(item T) error
	AddTimeout(item T, timeout time.Duration) error
	Next() (T, error)
	NextTimeout(timeout time.Duration) (T, error)
	Cancel()
	IsCanceled() bool
	Size() int
}

// EmptyWaiter is implemented by BoundedQueue and MonitoredQueue: queues
// that additionally expose a blocking Empty, unlike the base BlockingQueue
// contract. Empty and EmptyTimeout do not observe Cancel: they return only
// once the queue has drained (or, for EmptyTimeout, with ErrTimeout), never
// with ErrCanceled.
type EmptyWaiter interface {
	Empty() error
	EmptyTimeout(timeout time.Duration) error
}

// storage is the deque backing every Queue implementation in this package,
// mirroring the teacher template's slice-backed FIFO.
type storage[T any] struct {
	items []T
}

func (s *storage[T]) push(item T) {
	s.items = append(s.items, item)
}

func (s *storage[T]) pop() T {
	item := s.items[0]
	var zero T
	s.items[0] = zero
	s.items = s.items[1:]
	return item
}

func (s *storage[T]) len() int {
	return len(s.items)
}
