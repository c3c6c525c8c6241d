package syncore_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/mandelsoft/syncore/pkg/syncore"
)

var _ = Describe("Barrier", func() {
	It("releases all parties together once the last one arrives", func() {
		var tripped atomic.Int32
		barrier := syncore.NewBarrier(3, func() { tripped.Add(1) })

		var g errgroup.Group
		for i := 0; i < 3; i++ {
			g.Go(func() error {
				_, err := barrier.Await()
				return err
			})
		}
		Expect(g.Wait()).To(Succeed())
		Expect(tripped.Load()).To(BeEquivalentTo(1))
	})

	It("is reusable across generations", func() {
		barrier := syncore.NewBarrier(2, nil)
		for gen := 0; gen < 3; gen++ {
			var g errgroup.Group
			for i := 0; i < 2; i++ {
				g.Go(func() error {
					_, err := barrier.Await()
					return err
				})
			}
			Expect(g.Wait()).To(Succeed())
		}
	})

	It("breaks for every other party when one times out", func() {
		barrier := syncore.NewBarrier(3, nil) // third party never arrives

		errs := make(chan error, 1)
		go func() {
			_, err := barrier.Await()
			errs <- err
		}()
		time.Sleep(50 * time.Millisecond)

		_, err := barrier.AwaitTimeout(100 * time.Millisecond)
		Expect(err).To(MatchError(syncore.ErrTimeout))

		var other error
		Eventually(errs, time.Second).Should(Receive(&other))
		Expect(other).To(MatchError(syncore.ErrCanceled))
	})
})
