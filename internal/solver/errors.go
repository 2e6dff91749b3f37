package solver

import "fmt"

// UnknownMethodError reports a New call with a method name the package
// does not implement.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("solver: unknown method %q (have auto, euler, rk4, rkck54)", e.Method)
}

// StepLimitError reports an adaptive integration that exhausted its step
// budget. The system is left in a valid intermediate state; no result is
// produced.
type StepLimitError struct {
	Method   string
	MaxSteps int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("solver: %s exceeded the maximum of %d steps before reaching the end of the drivers",
		e.Method, e.MaxSteps)
}
