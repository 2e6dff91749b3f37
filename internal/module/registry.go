package module

import (
	"fmt"
	"sort"
)

// Registry is an immutable, named catalogue of module descriptors.
type Registry struct {
	name        string
	descriptors map[string]Descriptor
}

// NewRegistry builds a registry from descriptors. It panics if two
// descriptors share a name; that is a registration bug, not an input
// error.
func NewRegistry(name string, descriptors ...Descriptor) *Registry {
	r := &Registry{
		name:        name,
		descriptors: make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := r.descriptors[d.Name()]; dup {
			panic(fmt.Sprintf("module: duplicate descriptor %q in %s library", d.Name(), name))
		}
		r.descriptors[d.Name()] = d
	}
	return r
}

func (r *Registry) Name() string {
	return r.name
}

// Retrieve returns the descriptor registered under exactly name, or a
// *NotFoundError naming the module and the library.
func (r *Registry) Retrieve(name string) (Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, &NotFoundError{Module: name, Library: r.name}
	}
	return d, nil
}

// Modules returns the sorted names of every module in the library.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuantityInfo is one row of a library's quantity table.
type QuantityInfo struct {
	Module    string
	Quantity  string
	Direction string // "input" or "output"
}

// Quantities returns one row per declared input and output of every
// module in the library. Modules appear in sorted order; within a
// module, inputs precede outputs in declaration order.
func (r *Registry) Quantities() []QuantityInfo {
	rows := make([]QuantityInfo, 0)
	for _, name := range r.Modules() {
		d := r.descriptors[name]
		for _, q := range d.Inputs() {
			rows = append(rows, QuantityInfo{Module: name, Quantity: q, Direction: "input"})
		}
		for _, q := range d.Outputs() {
			rows = append(rows, QuantityInfo{Module: name, Quantity: q, Direction: "output"})
		}
	}
	return rows
}
