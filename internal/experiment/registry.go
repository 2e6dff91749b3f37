package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/quantsim/internal/extra"
	"github.com/san-kum/quantsim/internal/models"
	"github.com/san-kum/quantsim/internal/module"
)

// DefaultLibrary is the library a bare module reference resolves in.
const DefaultLibrary = "standard"

// Libraries multiplexes module lookups across every known library.
type Libraries struct {
	libs map[string]*module.Registry
}

// DefaultLibraries returns the standard and extra libraries.
func DefaultLibraries() *Libraries {
	return NewLibraries(models.Library(), extra.Library())
}

// NewLibraries indexes registries by name. Duplicate library names are a
// registration bug and panic, like duplicate modules within a library.
func NewLibraries(regs ...*module.Registry) *Libraries {
	l := &Libraries{libs: make(map[string]*module.Registry, len(regs))}
	for _, r := range regs {
		if _, dup := l.libs[r.Name()]; dup {
			panic(fmt.Sprintf("experiment: duplicate library %q", r.Name()))
		}
		l.libs[r.Name()] = r
	}
	return l
}

// Resolve turns a module reference into a descriptor. A bare name is
// looked up in the standard library; a "lib:name" reference selects the
// library explicitly.
func (l *Libraries) Resolve(ref string) (module.Descriptor, error) {
	lib, name, found := strings.Cut(ref, ":")
	if !found {
		lib, name = DefaultLibrary, ref
	}
	reg, ok := l.libs[lib]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown library %q in module reference %q", lib, ref)
	}
	return reg.Retrieve(name)
}

// ResolveAll resolves a reference list in order.
func (l *Libraries) ResolveAll(refs []string) ([]module.Descriptor, error) {
	out := make([]module.Descriptor, 0, len(refs))
	for _, ref := range refs {
		d, err := l.Resolve(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Library returns one registry by name.
func (l *Libraries) Library(name string) (*module.Registry, error) {
	reg, ok := l.libs[name]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown library %q", name)
	}
	return reg, nil
}

// Names returns the library names in sorted order.
func (l *Libraries) Names() []string {
	names := make([]string, 0, len(l.libs))
	for name := range l.libs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
