package syncore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/mandelsoft/syncore/pkg/syncore"
)

var _ = Describe("CountDownLatch", func() {
	It("releases every waiter once the count reaches zero", func() {
		latch := syncore.NewCountDownLatch(3)

		var g errgroup.Group
		for i := 0; i < 5; i++ {
			g.Go(func() error {
				return latch.Await()
			})
		}

		time.Sleep(50 * time.Millisecond)
		latch.CountDown()
		latch.CountDown()
		Expect(latch.Count()).To(Equal(1))
		latch.CountDown()

		Expect(g.Wait()).To(Succeed())
		Expect(latch.Count()).To(Equal(0))
	})

	It("treats CountDown past zero as a no-op", func() {
		latch := syncore.NewCountDownLatch(1)
		latch.CountDown()
		latch.CountDown()
		Expect(latch.Count()).To(Equal(0))
	})

	It("times out AwaitTimeout when the count never reaches zero", func() {
		latch := syncore.NewCountDownLatch(1)
		err := latch.AwaitTimeout(50 * time.Millisecond)
		Expect(err).To(MatchError(syncore.ErrTimeout))
	})

	It("is already triggered for a non-positive initial count", func() {
		latch := syncore.NewCountDownLatch(0)
		Expect(latch.Await()).To(Succeed())
	})
})
