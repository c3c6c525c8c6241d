package syncore_test

import (
	"fmt"
	"strings"
	"sync"
)

// LockResults records the order in which concurrent goroutines reach named
// steps, so a test can assert the exact interleaving a donation or signal
// protocol produced.
type LockResults struct {
	lock sync.Mutex
	list []string
}

func (l *LockResults) Add(step Step, e ...string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	msg := step.R(strings.Join(e, " "))
	fmt.Printf("%s\n", msg)
	l.list = append(l.list, msg)
}

func (l *LockResults) Snapshot() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	out := make([]string, len(l.list))
	copy(out, l.list)
	return out
}

type Step string

func (c Step) R(ctx ...string) string {
	return strings.Join(ctx, " ") + ": " + string(c)
}

func (c Step) S(ctx string) string {
	return ctx + " start: " + string(c)
}

const (
	ACQUIRE = Step("acquire")
	RELEASE = Step("release")
	WAIT    = Step("wait")
	SIGNAL  = Step("signal")
)

// Stepper feeds a goroutine one driven step at a time over a channel, so a
// test can interleave several goroutines in a controlled order.
type Stepper struct {
	result  *LockResults
	stepper chan Step
}

func NewStepper(result *LockResults) *Stepper {
	return &Stepper{result, make(chan Step, 100)}
}

func (s *Stepper) Step(step Step) {
	s.stepper <- step
}

func (s *Stepper) Finish() {
	close(s.stepper)
}
