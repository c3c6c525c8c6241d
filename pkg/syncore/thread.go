package syncore

import (
	"sync"
	"sync/atomic"

	"github.com/mandelsoft/syncore/internal/gid"
)

// ThreadHandle identifies the calling goroutine to the waiter-ordering
// policies used by Semaphore and the Mutex types built on it. It is the Go
// analogue of a thread's identity: something a waiter list can order on and
// a Monitor can be looked up by, without the library ever spawning or
// owning goroutines itself.
//
// A ThreadHandle obtained from Register MUST only be used by the goroutine
// that registered it, and must be released with the function Register
// returns once that goroutine is done using the priority-aware primitives.
type ThreadHandle interface {
	// Priority returns the waiter-ordering priority associated with this
	// handle. Higher values are serviced first by priority-ordered waiter
	// lists.
	Priority() int
	// SetPriority updates the priority used by subsequent waits.
	SetPriority(int)
}

type threadHandle struct {
	gid      int64
	priority atomic.Int64
}

func (h *threadHandle) Priority() int {
	return int(h.priority.Load())
}

func (h *threadHandle) SetPriority(p int) {
	h.priority.Store(int64(p))
}

var registry sync.Map // gid int64 -> *threadHandle

// Register associates the calling goroutine with a ThreadHandle of the
// given initial priority, for use with the priority-ordered waiter list and
// with Current. The returned release function must be called before the
// goroutine exits; Go reuses goroutine ids, so a handle left registered
// past its goroutine's lifetime could otherwise be silently inherited by an
// unrelated later goroutine.
func Register(priority int) (handle ThreadHandle, release func()) {
	id := gid.Current()
	h := &threadHandle{gid: id}
	h.priority.Store(int64(priority))
	registry.Store(id, h)
	return h, func() { registry.Delete(id) }
}

// Current returns the ThreadHandle registered for the calling goroutine. It
// panics if the calling goroutine has not called Register; unlike a
// thread, a goroutine has no ambient identity the library can safely
// fabricate on first use.
func Current() ThreadHandle {
	id := gid.Current()
	v, ok := registry.Load(id)
	if !ok {
		panic("syncore: Current() called from a goroutine that never called Register()")
	}
	return v.(*threadHandle)
}

// CurrentOrNil is like Current but returns nil instead of panicking when
// the calling goroutine never registered a handle. FIFO-ordered primitives
// use this so they remain usable without requiring callers to register.
func CurrentOrNil() ThreadHandle {
	id := gid.Current()
	v, ok := registry.Load(id)
	if !ok {
		return nil
	}
	return v.(*threadHandle)
}
