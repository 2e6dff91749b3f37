package models

import (
	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// HarmonicOscillator contributes the rates of a frictionless mass on a
// spring: d(position)/dt = velocity, d(velocity)/dt = -k·position/m.
type HarmonicOscillator struct{}

func (HarmonicOscillator) Name() string      { return "harmonic_oscillator" }
func (HarmonicOscillator) Kind() module.Kind { return module.Differential }

func (HarmonicOscillator) Inputs() []string {
	return []string{"position", "velocity", "mass", "spring_constant"}
}

func (HarmonicOscillator) Outputs() []string {
	return []string{"position", "velocity"}
}

func (HarmonicOscillator) FixedStepOnly() bool { return false }

func (HarmonicOscillator) New(in, out quantity.Store) module.Module {
	return &harmonicOscillator{in: in, out: out}
}

type harmonicOscillator struct {
	in, out quantity.Store
}

func (m *harmonicOscillator) Run() error {
	q, err := m.in.Select("position", "velocity", "mass", "spring_constant")
	if err != nil {
		return err
	}
	m.out.Add("position", q["velocity"])
	m.out.Add("velocity", -q["spring_constant"]*q["position"]/q["mass"])
	return nil
}

// HarmonicEnergy derives the kinetic, spring, and total energy of the
// oscillator state.
type HarmonicEnergy struct{}

func (HarmonicEnergy) Name() string      { return "harmonic_energy" }
func (HarmonicEnergy) Kind() module.Kind { return module.Direct }

func (HarmonicEnergy) Inputs() []string {
	return []string{"position", "velocity", "mass", "spring_constant"}
}

func (HarmonicEnergy) Outputs() []string {
	return []string{"kinetic_energy", "spring_energy", "total_energy"}
}

func (HarmonicEnergy) FixedStepOnly() bool { return false }

func (HarmonicEnergy) New(in, out quantity.Store) module.Module {
	return &harmonicEnergy{in: in, out: out}
}

type harmonicEnergy struct {
	in, out quantity.Store
}

func (m *harmonicEnergy) Run() error {
	q, err := m.in.Select("position", "velocity", "mass", "spring_constant")
	if err != nil {
		return err
	}
	kinetic := 0.5 * q["mass"] * q["velocity"] * q["velocity"]
	spring := 0.5 * q["spring_constant"] * q["position"] * q["position"]
	m.out.Set("kinetic_energy", kinetic)
	m.out.Set("spring_energy", spring)
	m.out.Set("total_energy", kinetic+spring)
	return nil
}

// EnergyRatio derives the kinetic fraction of the total energy. It reads
// the outputs of [HarmonicEnergy], so it must be listed after it.
type EnergyRatio struct{}

func (EnergyRatio) Name() string      { return "energy_ratio" }
func (EnergyRatio) Kind() module.Kind { return module.Direct }

func (EnergyRatio) Inputs() []string {
	return []string{"kinetic_energy", "total_energy"}
}

func (EnergyRatio) Outputs() []string {
	return []string{"kinetic_fraction"}
}

func (EnergyRatio) FixedStepOnly() bool { return false }

func (EnergyRatio) New(in, out quantity.Store) module.Module {
	return &energyRatio{in: in, out: out}
}

type energyRatio struct {
	in, out quantity.Store
}

func (m *energyRatio) Run() error {
	q, err := m.in.Select("kinetic_energy", "total_energy")
	if err != nil {
		return err
	}
	fraction := 0.0
	if q["total_energy"] != 0 {
		fraction = q["kinetic_energy"] / q["total_energy"]
	}
	m.out.Set("kinetic_fraction", fraction)
	return nil
}
