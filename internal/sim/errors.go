package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/physical/internal/units"
)

var (
	// ErrInvalidState indicates a NaN or Inf component in a body.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrForceCount indicates a system returned the wrong number of forces.
	ErrForceCount = errors.New("sim: system returned wrong number of forces")

	// ErrNoBodies indicates a run with nothing to simulate.
	ErrNoBodies = errors.New("sim: no bodies")
)

// StepError wraps a failure with the step at which it happened.
type StepError struct {
	Step    int
	Time    units.Scalar
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%s): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
