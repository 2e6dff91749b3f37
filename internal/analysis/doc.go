// Package analysis provides numeric diagnostics over simulation results.
//
//   - [Spectrum]: power spectrum of one result column
//   - [DominantPeriod]: period of the strongest frequency bin
//   - [PoissonDensity]: Poisson probability mass, stable for large means
//
// # Periodicity
//
// A clean oscillation shows up as a single dominant bin:
//
//	power, n, err := analysis.Spectrum(result, "position")
//	period := analysis.DominantPeriod(power, n) // rows per cycle
package analysis
