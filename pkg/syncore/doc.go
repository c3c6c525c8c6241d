// Package syncore is a small library of blocking concurrency primitives:
// a sticky wait/notify Monitor, a Semaphore engine parameterized over a
// waiter-ordering policy, a family of blocking Queues, two
// ReadWriteLock fairness policies, and the FastLock/Guard/ClassLockable
// substrate they are built from.
//
// The package is named syncore rather than sync so that code importing
// both it and the standard library's sync package never needs an import
// alias.
package syncore
