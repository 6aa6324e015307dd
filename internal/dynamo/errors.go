package dynamo

import "errors"

// Domain errors for integration runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates an initial state that does not fit the system.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrBadStep indicates a non-positive timestep or step count.
	ErrBadStep = errors.New("dynamo: timestep and step count must be positive")
)

// TraceError wraps an error with the step at which integration failed.
type TraceError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *TraceError) Error() string {
	return e.Wrapped.Error()
}

func (e *TraceError) Unwrap() error {
	return e.Wrapped
}
