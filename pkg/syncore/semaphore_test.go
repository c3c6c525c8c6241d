package syncore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/syncore/pkg/syncore"
)

var _ = Describe("Semaphore", func() {
	It("hands a single permit to a single FIFO waiter", func() {
		sem := syncore.NewSemaphore(0, syncore.NewFIFOWaiters())
		results := &LockResults{}
		done := make(chan struct{})

		go func() {
			results.Add(ACQUIRE, "consumer", "start")
			Expect(sem.Acquire()).To(Succeed())
			results.Add(ACQUIRE, "consumer")
			close(done)
		}()

		time.Sleep(200 * time.Millisecond)
		results.Add(RELEASE, "producer", "start")
		Expect(sem.Release()).To(Succeed())
		results.Add(RELEASE, "producer")

		Eventually(done, time.Second).Should(BeClosed())
		Expect(results.Snapshot()).To(Equal([]string{
			ACQUIRE.S("consumer"),
			RELEASE.S("producer"),
			RELEASE.R("producer"),
			ACQUIRE.R("consumer"),
		}))
	})

	It("wakes priority waiters highest-first", func() {
		sem := syncore.NewSemaphore(0, syncore.NewPriorityWaiters())
		results := &LockResults{}

		order := make(chan string, 3)
		park := func(name string, priority int) {
			_, release := syncore.Register(priority)
			defer release()
			results.Add(ACQUIRE, name, "start")
			Expect(sem.Acquire()).To(Succeed())
			order <- name
		}

		go park("T1", 1)
		time.Sleep(100 * time.Millisecond)
		go park("T2", 3)
		time.Sleep(100 * time.Millisecond)
		go park("T3", 2)
		time.Sleep(200 * time.Millisecond)

		Expect(sem.Release()).To(Succeed())
		Expect(sem.Release()).To(Succeed())
		Expect(sem.Release()).To(Succeed())

		var woke []string
		for i := 0; i < 3; i++ {
			var name string
			Eventually(order, time.Second).Should(Receive(&name))
			woke = append(woke, name)
		}
		Expect(woke).To(Equal([]string{"T2", "T3", "T1"}))
	})

	It("fails a checked Release past the configured maximum", func() {
		sem := syncore.NewCheckedSemaphore(2, 2, syncore.NewFIFOWaiters())
		Expect(sem.Release()).To(MatchError(syncore.ErrInvalidOp))
	})

	It("wakes a parked Acquire with ErrInterrupted", func() {
		sem := syncore.NewSemaphore(0, syncore.NewFIFOWaiters())

		handles := make(chan syncore.ThreadHandle, 1)
		errc := make(chan error, 1)
		go func() {
			handle, release := syncore.Register(0)
			defer release()
			handles <- handle
			errc <- sem.Acquire()
		}()

		handle := <-handles
		time.Sleep(200 * time.Millisecond)
		sem.Interrupt(handle)

		var err error
		Eventually(errc, time.Second).Should(Receive(&err))
		Expect(err).To(MatchError(syncore.ErrInterrupted))
	})

	It("times out TryAcquire when no permit arrives", func() {
		sem := syncore.NewSemaphore(0, syncore.NewFIFOWaiters())
		ok, err := sem.TryAcquire(50 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})
