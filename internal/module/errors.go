package module

import "fmt"

// NotFoundError reports a Retrieve of a module name the library does not
// carry.
type NotFoundError struct {
	Module  string
	Library string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q is not in the %s library", e.Module, e.Library)
}
