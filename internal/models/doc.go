// Package models is the standard module library.
//
//   - [HarmonicOscillator]: differential; frictionless mass on a spring
//   - [HarmonicEnergy]: direct; kinetic, spring, and total energy
//   - [EnergyRatio]: direct; kinetic fraction of total energy
//   - [ThermalTimeLinear]: differential; hourly thermal time accumulation
//   - [SolarPosition]: direct; solar geometry from time and place
//
// Descriptors are retrieved through [Library]:
//
//	d, err := models.Library().Retrieve("harmonic_oscillator")
package models
