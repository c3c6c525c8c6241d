package syncore

import "golang.org/x/exp/slices"

// waiter is one entry parked on a WaiterList: the Monitor the owner of the
// list will try to hand the resource to, and the thread identity used by
// priority-ordered lists to decide admission order.
type waiter struct {
	mon    *Monitor
	thread ThreadHandle
}

// WaiterList is the ordering policy a Semaphore (and so a Mutex or
// RecursiveMutex) parks its waiters under. Semaphore is written against
// this interface rather than a concrete list, so swapping NewFIFOWaiters for
// NewPriorityWaiters changes admission order without touching the
// donation/notify algorithm that drives it.
type WaiterList interface {
	// push appends a new waiter, positioning it according to the policy.
	push(w *waiter)
	// remove deletes w from the list, if present.
	remove(w *waiter)
	// all returns the parked waiters in the order this policy admits them,
	// for the head-to-tail donation walk Semaphore.Release performs. The
	// returned slice is a snapshot; mutating it does not
	// affect the list.
	all() []*waiter
	// len returns the number of parked waiters.
	len() int
}

// fifoWaiters admits waiters in arrival order.
type fifoWaiters struct {
	list []*waiter
}

// NewFIFOWaiters creates a WaiterList that admits waiters in the order they
// parked, matching the default ordering used throughout the teacher's own
// queue family.
func NewFIFOWaiters() WaiterList {
	return &fifoWaiters{}
}

func (l *fifoWaiters) push(w *waiter) {
	l.list = append(l.list, w)
}

func (l *fifoWaiters) remove(w *waiter) {
	for i, e := range l.list {
		if e == w {
			l.list = append(l.list[:i], l.list[i+1:]...)
			return
		}
	}
}

func (l *fifoWaiters) all() []*waiter {
	out := make([]*waiter, len(l.list))
	copy(out, l.list)
	return out
}

func (l *fifoWaiters) len() int {
	return len(l.list)
}

// priorityWaiters admits the highest-priority waiter first, breaking ties
// in arrival order. Priority is read from the waiter's ThreadHandle at push
// time, so a handle's priority must not change while it is parked.
type priorityWaiters struct {
	list []*waiter
}

// NewPriorityWaiters creates a WaiterList ordered by descending
// ThreadHandle.Priority, ties broken FIFO.
func NewPriorityWaiters() WaiterList {
	return &priorityWaiters{}
}

func (l *priorityWaiters) push(w *waiter) {
	p := waiterPriority(w)
	// insertion point: first entry whose priority is lower than p, so
	// ties keep arrival (FIFO) order.
	i := 0
	for i < len(l.list) && waiterPriority(l.list[i]) >= p {
		i++
	}
	l.list = slices.Insert(l.list, i, w)
}

func waiterPriority(w *waiter) int {
	if w.thread == nil {
		return 0
	}
	return w.thread.Priority()
}

func (l *priorityWaiters) remove(w *waiter) {
	for i, e := range l.list {
		if e == w {
			l.list = append(l.list[:i], l.list[i+1:]...)
			return
		}
	}
}

func (l *priorityWaiters) all() []*waiter {
	out := make([]*waiter, len(l.list))
	copy(out, l.list)
	return out
}

func (l *priorityWaiters) len() int {
	return len(l.list)
}
