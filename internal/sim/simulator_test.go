package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quantsim/internal/models"
	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
	"github.com/san-kum/quantsim/internal/sim"
)

func harmonicConfig() sim.Config {
	return sim.Config{
		InitialState: quantity.Store{"position": 0, "velocity": 1},
		Parameters:   quantity.Store{"mass": 10, "spring_constant": 0.1, "timestep": 1},
		Drivers:      quantity.Frame{"elapsed_time": {0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		Direct:       []module.Descriptor{models.HarmonicEnergy{}},
		Differential: []module.Descriptor{models.HarmonicOscillator{}},
		Method:       "euler",
		StepSize:     1,
		RelTol:       1e-4,
		AbsTol:       1e-4,
		MaxSteps:     200,
	}
}

var _ = Describe("Simulator", func() {
	It("reports the not-yet-run sentinel before the first run", func() {
		s, err := sim.New(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Report()).To(Equal("The solver has not been called yet"))
	})

	It("records every advertised column over the full driver series", func() {
		s, err := sim.New(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		result, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Duration()).To(Equal(10))
		Expect(result.Columns()).To(ConsistOf(
			"position", "velocity", "elapsed_time",
			"kinetic_energy", "spring_energy", "total_energy",
		))
		Expect(s.Report()).To(ContainSubstring("required 9 steps"))
	})

	It("continues where it left off when run twice without a reset", func() {
		s, err := sim.New(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		first, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(second.InitialRow()["position"]).To(Equal(first.FinalRow()["position"]))
		Expect(second.InitialRow()["velocity"]).To(Equal(first.FinalRow()["velocity"]))
		Expect(second["elapsed_time"]).To(Equal(first["elapsed_time"]))
	})

	It("leaves the system state equal to the final recorded row", func() {
		s, err := sim.New(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		result, err := s.Run()
		Expect(err).NotTo(HaveOccurred())

		state := s.System().CurrentState()
		final := result.FinalRow()
		for _, name := range s.System().StateNames() {
			Expect(state[name]).To(Equal(final[name]))
		}
	})

	It("rejects namespace conflicts with the full enumeration", func() {
		cfg := harmonicConfig()
		cfg.Parameters["velocity"] = 2 // collides with the initial state

		_, err := sim.New(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("dynsys.New: the supplied inputs cannot form a valid dynamical system"))
		Expect(err.Error()).To(ContainSubstring("defined more than once"))
		Expect(err.Error()).To(ContainSubstring("velocity"))
	})
})

var _ = Describe("Idempotent simulator", func() {
	It("produces identical results on repeated runs", func() {
		s, err := sim.NewIdempotent(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		first, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		third, err := s.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(third).To(Equal(first))
	})

	It("matches a bare simulator's first run", func() {
		bare, err := sim.New(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())
		wrapped, err := sim.NewIdempotent(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		want, err := bare.Run()
		Expect(err).NotTo(HaveOccurred())
		got, err := wrapped.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})
})

var _ = Describe("Rebuild simulator", func() {
	It("produces identical results on repeated runs", func() {
		s := sim.NewRebuild(harmonicConfig())

		first, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("is immune to later mutation of the caller's maps", func() {
		cfg := harmonicConfig()
		s := sim.NewRebuild(cfg)

		first, err := s.Run()
		Expect(err).NotTo(HaveOccurred())

		cfg.Parameters["mass"] = 1e6
		cfg.InitialState["velocity"] = -5
		cfg.Drivers["elapsed_time"][0] = 42

		second, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("surfaces invalid arguments on the first run", func() {
		cfg := harmonicConfig()
		cfg.Parameters["position"] = 7 // collides with the initial state

		s := sim.NewRebuild(cfg)
		_, err := s.Run()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("position"))
	})
})

var _ = Describe("Single-use simulator", func() {
	It("permits exactly one run", func() {
		s, err := sim.NewSingleUse(harmonicConfig())
		Expect(err).NotTo(HaveOccurred())

		first, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Duration()).To(Equal(10))

		_, err = s.Run()
		Expect(err).To(MatchError(sim.ErrAlreadyRun))
		_, err = s.Run()
		Expect(err).To(MatchError(sim.ErrAlreadyRun))
	})
})
