package syncore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/syncore/pkg/syncore"
)

var _ = Describe("Mutex", func() {
	It("serializes two goroutines through a critical section", func() {
		mu := syncore.NewMutex(nil)
		results := &LockResults{}

		results.Add(ACQUIRE, "main", "start")
		Expect(mu.Acquire()).To(Succeed())
		results.Add(ACQUIRE, "main")

		unlocked := make(chan struct{})
		go func() {
			results.Add(ACQUIRE, "other", "start")
			Expect(mu.Acquire()).To(Succeed())
			results.Add(ACQUIRE, "other")
			close(unlocked)
			Expect(mu.Release()).To(Succeed())
		}()

		time.Sleep(100 * time.Millisecond)
		Consistently(unlocked, 100*time.Millisecond).ShouldNot(BeClosed())

		results.Add(RELEASE, "main", "start")
		Expect(mu.Release()).To(Succeed())
		results.Add(RELEASE, "main")

		Eventually(unlocked, time.Second).Should(BeClosed())
	})
})

var _ = Describe("RecursiveMutex", func() {
	It("lets the owning goroutine reacquire without deadlocking", func() {
		_, release := syncore.Register(0)
		defer release()

		mu := syncore.NewRecursiveMutex(nil)
		Expect(mu.Acquire()).To(Succeed())
		Expect(mu.Acquire()).To(Succeed())

		Expect(mu.Release()).To(Succeed())

		ok, err := mu.TryAcquire(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue(), "still held at recursion depth 1")

		Expect(mu.Release()).To(Succeed())
		Expect(mu.Release()).To(Succeed())
	})

	It("panics if released by a goroutine that never acquired it", func() {
		mu := syncore.NewRecursiveMutex(nil)
		Expect(func() { _ = mu.Release() }).To(Panic())
	})
})
