package syncore

import (
	"sync"
	"time"
)

// classEntry is the shared, reference-counted Lockable a class of objects
// hands out through ClassLockable. The entry is created on first request
// for a given key and torn down once the last holder releases it.
type classEntry struct {
	lock  FastLock
	count AtomicCount
}

var (
	classRegistryLock sync.Mutex
	classRegistry     = map[string]*classEntry{}
)

// ClassLockable is a Lockable shared by every instance that asks for the
// same key, typically a type name: it gives a whole class of objects one
// lock to serialize against, rather than one lock per instance. The
// backing lock is created lazily on first use and released once the last
// ClassLockable referencing it is closed, via an atomic reference count -
// the Go analogue of the teacher template's CountedPtr-held singleton.
type ClassLockable struct {
	key   string
	entry *classEntry
}

// NewClassLockable returns a ClassLockable for key, creating the shared
// backing lock if this is the first outstanding reference to key.
func NewClassLockable(key string) *ClassLockable {
	classRegistryLock.Lock()
	defer classRegistryLock.Unlock()

	e, ok := classRegistry[key]
	if !ok {
		e = &classEntry{}
		classRegistry[key] = e
	}
	e.count.Increment(1)
	return &ClassLockable{key: key, entry: e}
}

// Close drops this reference to the shared backing lock, removing it from
// the registry once no ClassLockable for key remains. Close must be called
// exactly once per NewClassLockable call, and must not be followed by any
// further use of the receiver.
func (c *ClassLockable) Close() {
	classRegistryLock.Lock()
	defer classRegistryLock.Unlock()

	if c.entry.count.Decrement(1) == 0 {
		delete(classRegistry, c.key)
	}
}

func (c *ClassLockable) Acquire() error { return c.entry.lock.Acquire() }

func (c *ClassLockable) TryAcquire(timeout time.Duration) (bool, error) {
	return c.entry.lock.TryAcquire(timeout)
}

func (c *ClassLockable) Release() error { return c.entry.lock.Release() }

var _ Lockable = (*ClassLockable)(nil)
