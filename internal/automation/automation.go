// Package automation runs scripted batches of simulations. A scenario
// file lists steps; each step names a built-in preset or a definition
// file, picks a runner mode, and lands in the run store.
package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/experiment"
	"github.com/san-kum/quantsim/internal/storage"
)

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one scripted run. Exactly one of Preset and Config must be
// set. Label and Method override the definition's name and solver
// method when present.
type Step struct {
	Label  string `yaml:"label"`
	Preset string `yaml:"preset"`
	Config string `yaml:"config"`
	Mode   string `yaml:"mode"`
	Method string `yaml:"method"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: scenario %s has no steps", path)
	}

	return &scenario, nil
}

// StepResult records where one step's output landed.
type StepResult struct {
	Label  string
	RunID  string
	Rows   int
	Report string
}

// Runner executes scenarios against a run store.
type Runner struct {
	libs  *experiment.Libraries
	store *storage.Store
	log   *slog.Logger
}

func NewRunner(store *storage.Store, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		libs:  experiment.DefaultLibraries(),
		store: store,
		log:   log,
	}
}

// RunScenario executes the steps in order, saving each result before
// starting the next. It stops at the first failure and returns the
// results of the steps that did finish.
func (r *Runner) RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	if err := r.store.Init(); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("automation: step %d: %w", i+1, err)
		}
		r.log.Info("scenario step starting",
			"scenario", sc.Name,
			"step", i+1,
			"steps", len(sc.Steps),
			"definition", cfg.Name,
			"mode", step.Mode)

		runner, err := r.libs.Build(cfg, step.Mode)
		if err != nil {
			return results, fmt.Errorf("automation: step %d (%s): %w", i+1, cfg.Name, err)
		}
		result, err := runner.Run()
		if err != nil {
			return results, fmt.Errorf("automation: step %d (%s): %w", i+1, cfg.Name, err)
		}

		report := ""
		if rep, ok := runner.(interface{ Report() string }); ok {
			report = rep.Report()
		}
		runID, err := r.store.Save(cfg, report, result)
		if err != nil {
			return results, fmt.Errorf("automation: step %d (%s): %w", i+1, cfg.Name, err)
		}

		results = append(results, StepResult{
			Label:  cfg.Name,
			RunID:  runID,
			Rows:   result.Duration(),
			Report: report,
		})
		r.log.Info("scenario step finished",
			"scenario", sc.Name,
			"step", i+1,
			"run", runID,
			"rows", result.Duration())
	}

	return results, nil
}

func stepConfig(step Step) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Preset != "" && step.Config != "":
		return nil, fmt.Errorf("names both a preset and a config file")
	case step.Preset != "":
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", step.Preset)
		}
	case step.Config != "":
		loaded, err := config.Load(step.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		return nil, fmt.Errorf("names neither a preset nor a config file")
	}

	if step.Label != "" {
		cfg.Name = step.Label
	}
	if step.Method != "" {
		cfg.Solver.Method = step.Method
	}
	return cfg, nil
}
