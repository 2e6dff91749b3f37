// Package dynsys assembles named quantities, drivers, and modules into a
// steppable dynamical system.
//
// A system is built from four ingredients:
//
//   - an initial state: the quantities that evolve over time
//   - parameters: quantities fixed for the whole run
//   - a driver table: per-time-point quantity columns
//   - ordered direct and differential module lists
//
// Construction validates the combined quantity namespace and fails with
// a [ConflictError] enumerating every offending name. A built system
// owns deep copies of its inputs, so callers may keep mutating their
// maps without corrupting it.
//
// # Evaluation
//
// Evaluation is two-phase. [System.EvaluateDirect] installs a state
// vector and the drivers interpolated at a time index, then runs the
// direct modules in declaration order against the shared central store.
// [System.Derivatives] additionally zeroes the rate accumulator, runs
// the differential modules, and extracts the state derivative:
//
//	dy := make([]float64, len(sys.StateNames()))
//	if err := sys.Derivatives(t, y, dy); err != nil { ... }
//
// Time is measured in driver row indices; drivers are interpolated
// linearly between rows and clamped at the ends.
//
// Systems are not safe for concurrent use. Run one system per
// goroutine.
package dynsys
