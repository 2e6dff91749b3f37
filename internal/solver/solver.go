package solver

import (
	"fmt"
	"strings"

	"github.com/san-kum/quantsim/internal/dynsys"
	"github.com/san-kum/quantsim/internal/quantity"
)

// NotYetRun is the report of a solver that has not integrated anything.
const NotYetRun = "The solver has not been called yet"

// Methods returns the method names New accepts.
func Methods() []string {
	return []string{"auto", "euler", "rk4", "rkck54"}
}

// Solver integrates dynamical systems with one configured method.
type Solver struct {
	method   string
	stepSize float64
	relTol   float64
	absTol   float64
	maxSteps int
	report   string
}

// New configures a solver. The tolerances and step budget only govern
// the adaptive method; stepSize is recorded for reporting.
func New(method string, stepSize, relTol, absTol float64, maxSteps int) (*Solver, error) {
	switch method {
	case "auto", "euler", "rk4", "rkck54":
	default:
		return nil, &UnknownMethodError{Method: method}
	}
	if stepSize <= 0 {
		return nil, fmt.Errorf("solver: step size must be positive, got %g", stepSize)
	}
	if relTol <= 0 || absTol <= 0 {
		return nil, fmt.Errorf("solver: tolerances must be positive, got rel %g abs %g", relTol, absTol)
	}
	if maxSteps < 1 {
		return nil, fmt.Errorf("solver: step limit must be at least 1, got %d", maxSteps)
	}
	return &Solver{
		method:   method,
		stepSize: stepSize,
		relTol:   relTol,
		absTol:   absTol,
		maxSteps: maxSteps,
		report:   NotYetRun,
	}, nil
}

// Method returns the configured method name.
func (s *Solver) Method() string {
	return s.method
}

// Report describes the last Integrate call, or returns NotYetRun.
func (s *Solver) Report() string {
	return s.report
}

// Integrate walks the system's drivers from the first row to the last,
// recording one result row per driver row. The system's state is
// mutated: integrating again without a reset continues from where this
// run ended.
func (s *Solver) Integrate(sys *dynsys.System) (quantity.Frame, error) {
	method := s.method
	var note string
	switch {
	case method == "auto" && sys.RequiresFixedStep():
		method = "euler"
	case method == "auto":
		method = "rkck54"
	case method == "rkck54" && sys.RequiresFixedStep():
		method = "euler"
		note = "the system requires a fixed-step solver; rkck54 deferred to euler"
	}

	rec := newRecorder(sys)
	var (
		steps int
		err   error
	)
	switch method {
	case "euler":
		steps, err = eulerIntegrate(sys, rec)
	case "rk4":
		steps, err = rk4Integrate(sys, rec)
	case "rkck54":
		steps, err = adaptiveIntegrate(sys, rec, s.relTol, s.absTol, s.maxSteps)
	}
	if err != nil {
		s.report = fmt.Sprintf("%s failed after %d steps: %v", method, steps, err)
		return nil, err
	}

	var b strings.Builder
	if note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s required %d steps to integrate the system", method, steps)
	fmt.Fprintf(&b, "\ndriver rows: %d", sys.NTimes())
	fmt.Fprintf(&b, "\noutput step size: %g", s.stepSize)
	if method == "rkck54" {
		fmt.Fprintf(&b, "\nrelative tolerance: %g, absolute tolerance: %g, step limit: %d",
			s.relTol, s.absTol, s.maxSteps)
	}
	s.report = b.String()
	return rec.frame, nil
}

// recorder captures the system's advertised columns into a result frame,
// one row per driver row.
type recorder struct {
	sys   *dynsys.System
	cols  []string
	frame quantity.Frame
}

func newRecorder(sys *dynsys.System) *recorder {
	cols := sys.Columns()
	frame := make(quantity.Frame, len(cols))
	n := sys.NTimes()
	for _, c := range cols {
		frame[c] = make([]float64, n)
	}
	return &recorder{sys: sys, cols: cols, frame: frame}
}

// record runs the direct phase at integer row i with state y, then reads
// every advertised column.
func (r *recorder) record(i int, y []float64) error {
	if err := r.sys.EvaluateDirect(float64(i), y); err != nil {
		return err
	}
	for _, c := range r.cols {
		v, err := r.sys.Value(c)
		if err != nil {
			return err
		}
		r.frame[c][i] = v
	}
	return nil
}
