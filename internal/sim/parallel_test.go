package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quantsim/internal/sim"
)

var _ = Describe("RunAll", func() {
	It("runs every runner and keeps input order", func() {
		runners := make([]sim.Runner, 3)
		for i := range runners {
			s, err := sim.NewIdempotent(harmonicConfig())
			Expect(err).NotTo(HaveOccurred())
			runners[i] = s
		}

		results, err := sim.RunAll(context.Background(), runners)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[1]).To(Equal(results[0]))
		Expect(results[2]).To(Equal(results[0]))
		Expect(results[0].Duration()).To(Equal(10))
	})

	It("stops with the context error when already cancelled", func() {
		s, err := sim.NewIdempotent(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = sim.RunAll(ctx, []sim.Runner{s})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("surfaces the first runner failure", func() {
		spent, err := sim.NewSingleUse(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())
		_, err = spent.Run()
		Expect(err).NotTo(HaveOccurred())

		fresh, err := sim.NewIdempotent(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		_, err = sim.RunAll(context.Background(), []sim.Runner{fresh, spent})
		Expect(err).To(MatchError(sim.ErrAlreadyRun))
	})
})
