// Package extra is a second module library. It exists to exercise
// multi-library systems: its thermal module composes with the standard
// one, its solar module collides with the standard one on purpose, and
// its chilling module demands a fixed-step solver.
package extra

import "github.com/san-kum/quantsim/internal/module"

// Library returns the extra module library.
func Library() *module.Registry {
	return module.NewRegistry("extra",
		ThermalTimeLinear{},
		SolarPosition{},
		ChillingHours{},
	)
}
