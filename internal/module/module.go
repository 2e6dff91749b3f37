package module

import "github.com/san-kum/quantsim/internal/quantity"

// Kind distinguishes the two module roles in a dynamical system step.
type Kind int

const (
	// Direct modules assign derived quantities computed from the current
	// state, parameters, and drivers.
	Direct Kind = iota
	// Differential modules add time-derivative contributions for the
	// evolving quantities.
	Differential
)

func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Differential:
		return "differential"
	default:
		return "unknown"
	}
}

// Module is a computation bound to two quantity stores at construction.
type Module interface {
	// Run reads the bound input store and writes the bound output store.
	// Direct modules assign their outputs; differential modules add into
	// them, so running a differential module twice doubles its
	// contribution.
	Run() error
}

// Descriptor advertises one module of a library and creates bound
// instances of it.
type Descriptor interface {
	Name() string
	Kind() Kind
	Inputs() []string
	Outputs() []string
	// FixedStepOnly reports whether the module is incompatible with
	// adaptive step control.
	FixedStepOnly() bool
	// New binds a module instance to in and out. Binding is by
	// reference: the instance observes later mutations of both stores.
	New(in, out quantity.Store) Module
}
