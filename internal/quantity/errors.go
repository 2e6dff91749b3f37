package quantity

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumns is returned by Frame.Validate for a frame with no
	// columns at all.
	ErrNoColumns = errors.New("quantity: frame has no columns")

	// ErrRaggedFrame is returned by Frame.Validate when columns differ
	// in length.
	ErrRaggedFrame = errors.New("quantity: frame columns differ in length")
)

// NotFoundError reports a read of a quantity name the store does not
// define.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("quantity %q is not defined", e.Name)
}
