package sim

import (
	"errors"
	"fmt"
)

// Configuration errors, returned by New before any stepping.
var (
	ErrInvalidMethod           = errors.New("sim: invalid method")
	ErrInvalidMass             = errors.New("sim: mass must be positive and finite")
	ErrInvalidState            = errors.New("sim: invalid body state (NaN or Inf detected)")
	ErrInvalidTimeStep         = errors.New("sim: time step must be positive and finite")
	ErrInvalidStepCount        = errors.New("sim: step count must be positive")
	ErrInvalidSnapshotInterval = errors.New("sim: snapshot interval must not be negative")
	ErrNoBodies                = errors.New("sim: no bodies")
)

// ErrAlreadyRun is returned when Run is called on a Simulation that has
// already run, successfully or not.
var ErrAlreadyRun = errors.New("sim: simulation already run")

// ErrDiverged indicates body state became NaN or Inf after an update.
var ErrDiverged = errors.New("sim: state diverged (NaN or Inf detected)")

// SimulationError wraps a numerical failure with the step it occurred on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%gs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
