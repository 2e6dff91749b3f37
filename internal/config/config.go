// Package config reads and writes simulation definitions. A definition
// names everything a run needs: the initial state, parameters, driver
// table, module lists, and solver settings. Definitions live in yaml
// files or in the built-in preset table.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMethod   = "auto"
	DefaultStepSize = 1.0
	DefaultRelTol   = 1e-4
	DefaultAbsTol   = 1e-4
	DefaultMaxSteps = 200
)

// Config is a complete simulation definition. Module references name a
// module in the standard library ("harmonic_oscillator") or carry an
// explicit library prefix ("extra:thermal_time_linear").
type Config struct {
	Name         string               `yaml:"name"`
	InitialState map[string]float64   `yaml:"initial_state"`
	Parameters   map[string]float64   `yaml:"parameters"`
	Drivers      map[string][]float64 `yaml:"drivers"`
	Direct       []string             `yaml:"direct_modules"`
	Differential []string             `yaml:"differential_modules"`
	Solver       SolverConfig         `yaml:"solver"`
}

type SolverConfig struct {
	Method   string  `yaml:"method"`
	StepSize float64 `yaml:"step_size"`
	RelTol   float64 `yaml:"rel_tolerance"`
	AbsTol   float64 `yaml:"abs_tolerance"`
	MaxSteps int     `yaml:"max_steps"`
}

func DefaultSolver() SolverConfig {
	return SolverConfig{
		Method:   DefaultMethod,
		StepSize: DefaultStepSize,
		RelTol:   DefaultRelTol,
		AbsTol:   DefaultAbsTol,
		MaxSteps: DefaultMaxSteps,
	}
}

// WithDefaults fills zero fields with the package defaults, so a
// hand-built SolverConfig does not have to spell out all five settings.
func (s SolverConfig) WithDefaults() SolverConfig {
	if s.Method == "" {
		s.Method = DefaultMethod
	}
	if s.StepSize == 0 {
		s.StepSize = DefaultStepSize
	}
	if s.RelTol == 0 {
		s.RelTol = DefaultRelTol
	}
	if s.AbsTol == 0 {
		s.AbsTol = DefaultAbsTol
	}
	if s.MaxSteps == 0 {
		s.MaxSteps = DefaultMaxSteps
	}
	return s
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "run",
		InitialState: map[string]float64{},
		Parameters:   map[string]float64{},
		Drivers:      map[string][]float64{},
		Solver:       DefaultSolver(),
	}
}

// Load reads a definition from a yaml file. Fields absent from the file
// keep their defaults, so a definition only has to spell out what it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the definition's shape. Namespace rules and module
// existence are enforced later, when the system is assembled; this only
// rejects definitions that could never assemble.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: a definition needs a name")
	}
	if len(c.Drivers) == 0 {
		return fmt.Errorf("config: a definition needs at least one driver column")
	}
	rows := -1
	for name, col := range c.Drivers {
		if rows == -1 {
			rows = len(col)
		}
		if len(col) != rows {
			return fmt.Errorf("config: driver column %q has %d rows, want %d", name, len(col), rows)
		}
	}
	if rows < 2 {
		return fmt.Errorf("config: driver columns need at least two rows, got %d", rows)
	}
	for _, ref := range append(append([]string{}, c.Direct...), c.Differential...) {
		if err := checkModuleRef(ref); err != nil {
			return err
		}
	}
	if c.Solver.StepSize < 0 {
		return fmt.Errorf("config: step size cannot be negative, got %g", c.Solver.StepSize)
	}
	if c.Solver.RelTol < 0 || c.Solver.AbsTol < 0 {
		return fmt.Errorf("config: tolerances cannot be negative, got rel %g abs %g",
			c.Solver.RelTol, c.Solver.AbsTol)
	}
	if c.Solver.MaxSteps < 0 {
		return fmt.Errorf("config: step limit cannot be negative, got %d", c.Solver.MaxSteps)
	}
	return nil
}

func checkModuleRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("config: empty module reference")
	}
	lib, name, found := strings.Cut(ref, ":")
	if found && (lib == "" || name == "") {
		return fmt.Errorf("config: malformed module reference %q", ref)
	}
	return nil
}

// Clone deep-copies the definition. Presets hand out clones so callers
// can edit a definition without poisoning the shared table.
func (c *Config) Clone() *Config {
	out := &Config{
		Name:         c.Name,
		InitialState: make(map[string]float64, len(c.InitialState)),
		Parameters:   make(map[string]float64, len(c.Parameters)),
		Drivers:      make(map[string][]float64, len(c.Drivers)),
		Direct:       append([]string(nil), c.Direct...),
		Differential: append([]string(nil), c.Differential...),
		Solver:       c.Solver,
	}
	for k, v := range c.InitialState {
		out.InitialState[k] = v
	}
	for k, v := range c.Parameters {
		out.Parameters[k] = v
	}
	for k, col := range c.Drivers {
		out.Drivers[k] = append([]float64(nil), col...)
	}
	return out
}
