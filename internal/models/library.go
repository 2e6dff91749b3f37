package models

import "github.com/san-kum/quantsim/internal/module"

// Library returns the standard module library. Each call builds a fresh
// registry, so callers cannot interfere with one another.
func Library() *module.Registry {
	return module.NewRegistry("standard",
		HarmonicOscillator{},
		HarmonicEnergy{},
		EnergyRatio{},
		ThermalTimeLinear{},
		SolarPosition{},
	)
}
