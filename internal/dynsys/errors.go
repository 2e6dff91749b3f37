package dynsys

import (
	"errors"
	"strings"
)

// ErrShortDrivers is returned by New when the driver columns have fewer
// than two rows.
var ErrShortDrivers = errors.New("dynsys: driver columns need at least two rows")

// ConflictError is the construction error of New. Its message format is
// user-visible and stable: a leading line identifying the constructor,
// then one category line per violated rule followed by the offending
// names, sorted, indented two spaces.
type ConflictError struct {
	// Duplicated names occur more than once across the initial state,
	// parameters, drivers, and direct module outputs.
	Duplicated []string
	// Uninitialized names are differential module outputs missing from
	// the initial state.
	Uninitialized []string
	// Undefined names are module inputs that no part of the system
	// defines.
	Undefined []string
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("dynsys.New: the supplied inputs cannot form a valid dynamical system")
	section := func(heading string, names []string) {
		if len(names) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(heading)
		for _, n := range names {
			b.WriteString("\n  ")
			b.WriteString(n)
		}
	}
	section("The following quantities were defined more than once in the inputs:", e.Duplicated)
	section("The following differential module outputs are missing from the initial state:", e.Uninitialized)
	section("The following module inputs are not defined anywhere in the inputs:", e.Undefined)
	return b.String()
}
