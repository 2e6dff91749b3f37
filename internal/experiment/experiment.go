// Package experiment assembles runnable simulators from definitions.
// It owns the mapping from module references in a definition to the
// descriptors of the known libraries.
package experiment

import (
	"fmt"

	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/quantity"
	"github.com/san-kum/quantsim/internal/sim"
)

// Modes returns the runner mode names Build accepts.
func Modes() []string {
	return []string{"plain", "idempotent", "rebuild", "single"}
}

// Build assembles a runner from a definition using the default
// libraries. The mode picks the rerun guarantee. An empty mode means
// idempotent, the right choice for callers that may retry.
func Build(cfg *config.Config, mode string) (sim.Runner, error) {
	return DefaultLibraries().Build(cfg, mode)
}

// Build assembles a runner from a definition against these libraries.
func (l *Libraries) Build(cfg *config.Config, mode string) (sim.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	direct, err := l.ResolveAll(cfg.Direct)
	if err != nil {
		return nil, err
	}
	differential, err := l.ResolveAll(cfg.Differential)
	if err != nil {
		return nil, err
	}

	sv := cfg.Solver.WithDefaults()
	simCfg := sim.Config{
		InitialState: quantity.Store(cfg.InitialState),
		Parameters:   quantity.Store(cfg.Parameters),
		Drivers:      quantity.Frame(cfg.Drivers),
		Direct:       direct,
		Differential: differential,
		Method:       sv.Method,
		StepSize:     sv.StepSize,
		RelTol:       sv.RelTol,
		AbsTol:       sv.AbsTol,
		MaxSteps:     sv.MaxSteps,
	}

	switch mode {
	case "plain":
		return sim.New(simCfg)
	case "idempotent", "":
		return sim.NewIdempotent(simCfg)
	case "rebuild":
		return sim.NewRebuild(simCfg), nil
	case "single":
		return sim.NewSingleUse(simCfg)
	default:
		return nil, fmt.Errorf("experiment: unknown runner mode %q", mode)
	}
}
