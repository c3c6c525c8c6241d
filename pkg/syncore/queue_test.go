package syncore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/syncore/pkg/syncore"
)

var _ = Describe("BoundedQueue", func() {
	It("blocks Add once at capacity and releases it on the next Next", func() {
		q := syncore.NewBoundedQueue[int](2)

		Expect(q.Add(1)).To(Succeed())
		Expect(q.Add(2)).To(Succeed())
		Expect(q.Size()).To(Equal(2))

		blocked := make(chan error, 1)
		go func() {
			blocked <- q.Add(3)
		}()

		Consistently(blocked, 200*time.Millisecond).ShouldNot(Receive())

		v, err := q.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(1))

		Eventually(blocked, time.Second).Should(Receive(BeNil()))
		Expect(q.Size()).To(Equal(2))
	})

	It("drains to Empty once every value has been taken", func() {
		q := syncore.NewBoundedQueue[int](2)
		Expect(q.Add(1)).To(Succeed())

		done := make(chan error, 1)
		go func() { done <- q.Empty() }()

		Consistently(done, 100*time.Millisecond).ShouldNot(Receive())

		_, err := q.Next()
		Expect(err).NotTo(HaveOccurred())

		Eventually(done, time.Second).Should(Receive(BeNil()))
	})
})

var _ = Describe("BlockingQueue", func() {
	It("wakes every blocked consumer with ErrCanceled on Cancel", func() {
		q := syncore.NewBlockingQueue[int]()

		const consumers = 3
		errs := make(chan error, consumers)
		for i := 0; i < consumers; i++ {
			go func() {
				_, err := q.Next()
				errs <- err
			}()
		}

		time.Sleep(200 * time.Millisecond)
		q.Cancel()

		for i := 0; i < consumers; i++ {
			var err error
			Eventually(errs, time.Second).Should(Receive(&err))
			Expect(err).To(MatchError(syncore.ErrCanceled))
		}
		Expect(q.IsCanceled()).To(BeTrue())
	})

	It("never blocks Add even when unbounded and empty", func() {
		q := syncore.NewBlockingQueue[string]()
		Expect(q.Add("a")).To(Succeed())
		v, err := q.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("a"))
	})
})

var _ = Describe("MonitoredQueue", func() {
	It("is unbounded like BlockingQueue but also waits for Empty", func() {
		q := syncore.NewMonitoredQueue[int]()
		Expect(q.Add(1)).To(Succeed())
		Expect(q.Add(2)).To(Succeed())

		done := make(chan error, 1)
		go func() { done <- q.Empty() }()
		Consistently(done, 100*time.Millisecond).ShouldNot(Receive())

		_, _ = q.Next()
		Consistently(done, 100*time.Millisecond).ShouldNot(Receive())
		_, _ = q.Next()

		Eventually(done, time.Second).Should(Receive(BeNil()))
	})
})
