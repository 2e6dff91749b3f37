// Package sim couples dynamical systems with solvers and offers
// simulator flavors with different rerun guarantees.
//
//   - [Simulator]: the bare coupling; a second Run continues where the
//     first ended
//   - [Idempotent]: resets its system before every run
//   - [Rebuild]: builds a fresh system and solver for every run
//   - [SingleUse]: permits exactly one run
//
// All flavors satisfy [Runner], so call sites can swap them freely.
package sim

import (
	"errors"

	"github.com/san-kum/quantsim/internal/dynsys"
	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
	"github.com/san-kum/quantsim/internal/solver"
)

// ErrAlreadyRun is returned by SingleUse.Run on every attempt after the
// first.
var ErrAlreadyRun = errors.New("sim: a single-use simulator can only be run once")

// Runner is the shared surface of the simulator flavors.
type Runner interface {
	Run() (quantity.Frame, error)
}

// Config bundles everything needed to assemble a simulation: the four
// system ingredients and the solver settings.
type Config struct {
	InitialState quantity.Store
	Parameters   quantity.Store
	Drivers      quantity.Frame
	Direct       []module.Descriptor
	Differential []module.Descriptor

	Method   string
	StepSize float64
	RelTol   float64
	AbsTol   float64
	MaxSteps int
}

// clone deep-copies the stores and frame. Descriptor slices are copied
// shallowly; descriptors are stateless factories.
func (c Config) clone() Config {
	out := c
	out.InitialState = c.InitialState.Clone()
	out.Parameters = c.Parameters.Clone()
	out.Drivers = c.Drivers.Clone()
	out.Direct = append([]module.Descriptor(nil), c.Direct...)
	out.Differential = append([]module.Descriptor(nil), c.Differential...)
	return out
}

func (c Config) build() (*dynsys.System, *solver.Solver, error) {
	sys, err := dynsys.New(c.InitialState, c.Parameters, c.Drivers, c.Direct, c.Differential)
	if err != nil {
		return nil, nil, err
	}
	sv, err := solver.New(c.Method, c.StepSize, c.RelTol, c.AbsTol, c.MaxSteps)
	if err != nil {
		return nil, nil, err
	}
	return sys, sv, nil
}

// Simulator is the bare coupling of one system and one solver. Run
// mutates the system state, so a second Run continues from the end of
// the first; wrap it when that is not what you want.
type Simulator struct {
	sys    *dynsys.System
	solver *solver.Solver
}

// New builds the system and solver eagerly, surfacing validation errors
// before anything runs.
func New(cfg Config) (*Simulator, error) {
	sys, sv, err := cfg.build()
	if err != nil {
		return nil, err
	}
	return &Simulator{sys: sys, solver: sv}, nil
}

func (s *Simulator) Run() (quantity.Frame, error) {
	return s.solver.Integrate(s.sys)
}

// Report describes the last run, or the not-yet-run sentinel.
func (s *Simulator) Report() string {
	return s.solver.Report()
}

// System exposes the underlying system for state inspection.
func (s *Simulator) System() *dynsys.System {
	return s.sys
}

// Idempotent resets its system before every run, making repeated runs
// identical.
type Idempotent struct {
	sim *Simulator
}

func NewIdempotent(cfg Config) (*Idempotent, error) {
	inner, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Idempotent{sim: inner}, nil
}

func (s *Idempotent) Run() (quantity.Frame, error) {
	s.sim.sys.Reset()
	return s.sim.Run()
}

func (s *Idempotent) Report() string {
	return s.sim.Report()
}

// Rebuild snapshots its construction arguments and assembles a
// brand-new system and solver for every run, so repeated runs are
// identical even if the caller keeps mutating the maps it built the
// Config from. Invalid arguments surface on the first Run rather than
// at construction.
type Rebuild struct {
	cfg Config
}

func NewRebuild(cfg Config) *Rebuild {
	return &Rebuild{cfg: cfg.clone()}
}

func (s *Rebuild) Run() (quantity.Frame, error) {
	inner, err := New(s.cfg)
	if err != nil {
		return nil, err
	}
	return inner.Run()
}

// SingleUse permits exactly one run. Later attempts fail with
// ErrAlreadyRun without touching the system.
type SingleUse struct {
	sim  *Simulator
	used bool
}

func NewSingleUse(cfg Config) (*SingleUse, error) {
	inner, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &SingleUse{sim: inner}, nil
}

func (s *SingleUse) Run() (quantity.Frame, error) {
	if s.used {
		return nil, ErrAlreadyRun
	}
	s.used = true
	return s.sim.Run()
}

func (s *SingleUse) Report() string {
	return s.sim.Report()
}
