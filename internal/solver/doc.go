// Package solver integrates a dynamical system across its driver time
// series and records the result frame.
//
//   - euler: fixed-step forward Euler, one step per driver interval
//   - rk4: fixed-step classic Runge–Kutta 4
//   - rkck54: adaptive Cash–Karp 5(4) with per-step error control
//   - auto: euler when the system requires fixed steps, rkck54 otherwise
//
// Time is the driver row index; every method records one result row per
// driver row. Integration mutates the system state, so a second
// Integrate without a reset continues where the first left off:
//
//	sv, _ := solver.New("rk4", 1, 1e-4, 1e-4, 200)
//	result, err := sv.Integrate(sys)
//
// [Solver.Report] describes the last run, or returns [NotYetRun] before
// the first one.
package solver
