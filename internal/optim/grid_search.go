// Package optim sweeps definition parameters and ranks the outcomes.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/experiment"
	"github.com/san-kum/quantsim/internal/quantity"
	"github.com/san-kum/quantsim/internal/sim"
)

// Objective scores a finished run. Lower is better.
type Objective func(result quantity.Frame) float64

// FinalValue is an objective reading one column's final row. A missing
// column scores +Inf, so it can never win the search.
func FinalValue(column string) Objective {
	return func(result quantity.Frame) float64 {
		col, ok := result[column]
		if !ok || len(col) == 0 {
			return math.Inf(1)
		}
		return col[len(col)-1]
	}
}

// Axis is one swept parameter and the values to try for it.
type Axis struct {
	Parameter string
	Values    []float64
}

// Point is one evaluated grid cell.
type Point struct {
	Parameters map[string]float64
	Score      float64
}

type GridSearch struct {
	axes []Axis
	libs *experiment.Libraries
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes, libs: experiment.DefaultLibraries()}
}

// Search evaluates every cell of the cross product in parallel, one
// freshly built simulator per cell, and returns the points sorted by
// score, best first. Ties keep enumeration order. The base definition
// is never mutated.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) ([]Point, error) {
	if len(g.axes) == 0 {
		return nil, fmt.Errorf("optim: grid search needs at least one axis")
	}
	for _, a := range g.axes {
		if a.Parameter == "" {
			return nil, fmt.Errorf("optim: axis without a parameter name")
		}
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("optim: axis %q has no values", a.Parameter)
		}
	}

	points := g.enumerate(0, map[string]float64{}, nil)
	runners := make([]sim.Runner, len(points))
	for i := range points {
		cfg := base.Clone()
		for name, v := range points[i].Parameters {
			cfg.Parameters[name] = v
		}
		runner, err := g.libs.Build(cfg, "single")
		if err != nil {
			return nil, err
		}
		runners[i] = runner
	}

	results, err := sim.RunAll(ctx, runners)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Score = objective(results[i])
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Score < points[j].Score
	})
	return points, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, acc []Point) []Point {
	if depth == len(g.axes) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		return append(acc, Point{Parameters: params})
	}
	axis := g.axes[depth]
	for _, v := range axis.Values {
		current[axis.Parameter] = v
		acc = g.enumerate(depth+1, current, acc)
	}
	delete(current, axis.Parameter)
	return acc
}
