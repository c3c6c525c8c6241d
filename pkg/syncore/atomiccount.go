package syncore

import "sync/atomic"

// AtomicCount is a simple wrapper around a 64-bit counter that can be read,
// incremented and decremented without external locking. It backs the
// reference count ClassLockable keeps for each shared backing lock.
type AtomicCount struct {
	value atomic.Int64
}

// NewAtomicCount creates an AtomicCount initialized to n.
func NewAtomicCount(n int64) *AtomicCount {
	c := &AtomicCount{}
	c.value.Store(n)
	return c
}

// Value returns the current count.
func (c *AtomicCount) Value() int64 {
	return c.value.Load()
}

// Increment adds delta to the count and returns the new value.
func (c *AtomicCount) Increment(delta int64) int64 {
	return c.value.Add(delta)
}

// Decrement subtracts delta from the count and returns the new value.
func (c *AtomicCount) Decrement(delta int64) int64 {
	return c.value.Add(-delta)
}

// CompareAndSwap atomically sets the count to new if it currently holds
// old, reporting whether it did so.
func (c *AtomicCount) CompareAndSwap(old, new int64) bool {
	return c.value.CompareAndSwap(old, new)
}
