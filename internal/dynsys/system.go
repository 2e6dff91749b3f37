package dynsys

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// System is a dynamical system over named quantities. It owns a central
// store shared by value with every bound module, a rate accumulator
// shared with the differential modules, and a snapshot of the initial
// state for Reset.
type System struct {
	quantities quantity.Store
	deriv      quantity.Store
	initial    quantity.Store
	drivers    quantity.Frame

	direct       []boundModule
	differential []boundModule

	stateNames    []string
	driverNames   []string
	directOutputs []string

	fixedStepOnly bool
}

type boundModule struct {
	name string
	mod  module.Module
}

// New validates and assembles a system. The caller's stores and frame
// are deep-copied; the returned system never aliases them. Validation
// failures return a *ConflictError enumerating every offending quantity.
func New(initial, parameters quantity.Store, drivers quantity.Frame, direct, differential []module.Descriptor) (*System, error) {
	if err := drivers.Validate(); err != nil {
		return nil, fmt.Errorf("dynsys: invalid driver table: %w", err)
	}
	if drivers.Duration() < 2 {
		return nil, ErrShortDrivers
	}
	if err := validate(initial, parameters, drivers, direct, differential); err != nil {
		return nil, err
	}

	s := &System{
		quantities: initial.Clone(),
		deriv:      quantity.NewStore(),
		initial:    initial.Clone(),
		drivers:    drivers.Clone(),
	}
	for name, v := range parameters {
		s.quantities[name] = v
	}

	s.driverNames = drivers.Columns()
	for _, name := range s.driverNames {
		s.quantities[name] = s.drivers[name][0]
	}

	for _, d := range direct {
		for _, out := range d.Outputs() {
			s.quantities[out] = 0
			s.directOutputs = append(s.directOutputs, out)
		}
		s.direct = append(s.direct, boundModule{
			name: d.Name(),
			mod:  d.New(s.quantities, s.quantities),
		})
		s.fixedStepOnly = s.fixedStepOnly || d.FixedStepOnly()
	}

	seen := make(map[string]bool)
	for _, d := range differential {
		for _, out := range d.Outputs() {
			if !seen[out] {
				seen[out] = true
				s.stateNames = append(s.stateNames, out)
				s.deriv[out] = 0
			}
		}
		s.differential = append(s.differential, boundModule{
			name: d.Name(),
			mod:  d.New(s.quantities, s.deriv),
		})
		s.fixedStepOnly = s.fixedStepOnly || d.FixedStepOnly()
	}

	return s, nil
}

// validate applies the namespace rules. Names may be defined exactly
// once across the initial state, parameters, drivers, and direct module
// outputs. Differential outputs are exempt from mutual conflict (their
// rates add) but must name initial-state quantities. Every module input
// must be defined somewhere.
func validate(initial, parameters quantity.Store, drivers quantity.Frame, direct, differential []module.Descriptor) error {
	counts := make(map[string]int)
	for name := range initial {
		counts[name]++
	}
	for name := range parameters {
		counts[name]++
	}
	for name := range drivers {
		counts[name]++
	}
	for _, d := range direct {
		for _, out := range d.Outputs() {
			counts[out]++
		}
	}

	var conflict ConflictError
	for name, n := range counts {
		if n > 1 {
			conflict.Duplicated = append(conflict.Duplicated, name)
		}
	}

	uninitialized := make(map[string]bool)
	for _, d := range differential {
		for _, out := range d.Outputs() {
			if !initial.Has(out) && !uninitialized[out] {
				uninitialized[out] = true
				conflict.Uninitialized = append(conflict.Uninitialized, out)
			}
		}
	}

	undefined := make(map[string]bool)
	for _, d := range append(append([]module.Descriptor{}, direct...), differential...) {
		for _, in := range d.Inputs() {
			if _, ok := counts[in]; !ok && !undefined[in] {
				undefined[in] = true
				conflict.Undefined = append(conflict.Undefined, in)
			}
		}
	}

	if len(conflict.Duplicated)+len(conflict.Uninitialized)+len(conflict.Undefined) == 0 {
		return nil
	}
	sort.Strings(conflict.Duplicated)
	sort.Strings(conflict.Uninitialized)
	sort.Strings(conflict.Undefined)
	return &conflict
}

// NTimes returns the number of driver rows.
func (s *System) NTimes() int {
	return s.drivers.Duration()
}

// StateNames returns the evolving quantity names in declaration order of
// the differential module outputs, first occurrence winning.
func (s *System) StateNames() []string {
	out := make([]string, len(s.stateNames))
	copy(out, s.stateNames)
	return out
}

func (s *System) DriverNames() []string {
	out := make([]string, len(s.driverNames))
	copy(out, s.driverNames)
	return out
}

func (s *System) DirectOutputNames() []string {
	out := make([]string, len(s.directOutputs))
	copy(out, s.directOutputs)
	return out
}

// Columns returns the quantity names a result of this system carries:
// evolving state, drivers, then direct outputs.
func (s *System) Columns() []string {
	cols := make([]string, 0, len(s.stateNames)+len(s.driverNames)+len(s.directOutputs))
	cols = append(cols, s.stateNames...)
	cols = append(cols, s.driverNames...)
	cols = append(cols, s.directOutputs...)
	return cols
}

// RequiresFixedStep reports whether any bound module is incompatible
// with adaptive step control.
func (s *System) RequiresFixedStep() bool {
	return s.fixedStepOnly
}

// State returns the evolving quantities as a vector ordered by
// StateNames.
func (s *System) State() []float64 {
	y := make([]float64, len(s.stateNames))
	for i, name := range s.stateNames {
		y[i] = s.quantities[name]
	}
	return y
}

// SetState installs y into the central store without evaluating any
// modules.
func (s *System) SetState(y []float64) {
	for i, name := range s.stateNames {
		s.quantities[name] = y[i]
	}
}

// CurrentState copies the evolving quantities into a store.
func (s *System) CurrentState() quantity.Store {
	out := make(quantity.Store, len(s.stateNames))
	for _, name := range s.stateNames {
		out[name] = s.quantities[name]
	}
	return out
}

// Value reads any quantity from the central store.
func (s *System) Value(name string) (float64, error) {
	return s.quantities.Get(name)
}

// Reset restores the evolving quantities to their construction-time
// snapshot. Parameters and drivers are untouched; direct outputs are
// recomputed on the next evaluation.
func (s *System) Reset() {
	for name, v := range s.initial {
		s.quantities[name] = v
	}
}

// EvaluateDirect installs y and the drivers interpolated at time index
// t, then runs the direct modules in declaration order.
func (s *System) EvaluateDirect(t float64, y []float64) error {
	s.SetState(y)
	s.installDrivers(t)
	for _, b := range s.direct {
		if err := b.mod.Run(); err != nil {
			return fmt.Errorf("dynsys: direct module %s: %w", b.name, err)
		}
	}
	return nil
}

// Derivatives evaluates the direct phase at (t, y), zeroes the rate
// accumulator, runs the differential modules, and writes the state
// derivative into dy, ordered by StateNames.
func (s *System) Derivatives(t float64, y, dy []float64) error {
	if err := s.EvaluateDirect(t, y); err != nil {
		return err
	}
	for _, name := range s.stateNames {
		s.deriv[name] = 0
	}
	for _, b := range s.differential {
		if err := b.mod.Run(); err != nil {
			return fmt.Errorf("dynsys: differential module %s: %w", b.name, err)
		}
	}
	for i, name := range s.stateNames {
		dy[i] = s.deriv[name]
	}
	return nil
}

// installDrivers interpolates every driver column linearly at t, clamped
// to [0, NTimes-1].
func (s *System) installDrivers(t float64) {
	n := s.drivers.Duration()
	if t < 0 {
		t = 0
	}
	if last := float64(n - 1); t > last {
		t = last
	}
	lo := int(math.Floor(t))
	hi := lo + 1
	frac := t - float64(lo)
	if hi > n-1 {
		hi = n - 1
		frac = 0
	}
	for name, col := range s.drivers {
		s.quantities[name] = col[lo] + frac*(col[hi]-col[lo])
	}
}
