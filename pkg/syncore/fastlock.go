package syncore

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/mandelsoft/syncore/internal/gid"
)

// debugMode toggles the package-wide "debug build" behavior spec.md calls
// for on FastLock (an owning-goroutine assertion on Release) and is off by
// default, matching a release build's zero overhead.
var debugMode atomic.Bool

// SetDebugMode enables or disables the debug-build assertions this package
// describes: FastLock.Release checks that the calling goroutine is the one
// that last acquired it, panicking with an InvalidOp-kind *Error otherwise.
// It is a package-wide toggle rather than a per-lock option because the
// zero value of a FastLock (used as an embedded field throughout this
// package) must stay usable with no constructor call.
func SetDebugMode(enabled bool) {
	debugMode.Store(enabled)
}

// FastLock is a non-reentrant spin lock used for the short, low-contention
// critical sections the other primitives in this package serialize
// through internally: Semaphore, Condition, the Queue family, and the
// biased/fair ReadWriteLock variants all guard their own bookkeeping with
// a FastLock rather than parking a goroutine through the full Monitor
// protocol for what is meant to be a handful of instructions.
//
// Acquire spins on an atomic compare-and-swap, yielding the processor
// between failed attempts rather than blocking in the runtime scheduler.
// Recursive acquisition by the same goroutine deadlocks, exactly as with
// sync.Mutex. The zero value is an unlocked FastLock, ready to use.
type FastLock struct {
	held  atomic.Int32 // 0 == free, 1 == held
	owner atomic.Int64 // valid only while held and debugMode is set
}

// Acquire blocks until the lock is held by the calling goroutine.
func (l *FastLock) Acquire() error {
	for !l.held.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
	if debugMode.Load() {
		l.owner.Store(gid.Current())
	}
	return nil
}

// Lock is Acquire, ignoring its error (which is always nil), so FastLock
// satisfies sync.Locker for use with sync.Cond.
func (l *FastLock) Lock() { _ = l.Acquire() }

// Release releases a lock held by the calling goroutine.
//
// In debug mode (see SetDebugMode) Release first asserts that the calling
// goroutine is the one that last acquired this lock, panicking with an
// InvalidOp-kind *Error otherwise, then clears the assertion along with the
// held slot.
func (l *FastLock) Release() error {
	if debugMode.Load() {
		if l.owner.Load() != gid.Current() {
			panic(newError(InvalidOp, "FastLock released by a goroutine that never acquired it"))
		}
		l.owner.Store(0)
	}
	l.held.Store(0)
	return nil
}

// Unlock is Release, ignoring its error, so FastLock satisfies
// sync.Locker.
func (l *FastLock) Unlock() { _ = l.Release() }

// TryAcquire performs a single non-blocking acquisition attempt. timeout
// is accepted for interface parity with the rest of Lockable but is not
// enforced beyond that single attempt, matching a spin lock's short
// expected hold time.
func (l *FastLock) TryAcquire(timeout time.Duration) (bool, error) {
	ok := l.held.CompareAndSwap(0, 1)
	if ok && debugMode.Load() {
		l.owner.Store(gid.Current())
	}
	return ok, nil
}
