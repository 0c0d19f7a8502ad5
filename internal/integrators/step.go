package integrators

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stepper advances a body set with one method, reusing scratch buffers
// between steps. It is not safe for concurrent use.
type Stepper struct {
	method  Method
	workers int
	scratch []r3.Vec
	acc     []r3.Vec
}

func NewStepper(m Method, workers int) (*Stepper, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("integrators: invalid method %d", int(m))
	}
	return &Stepper{method: m, workers: workers}, nil
}

func (s *Stepper) Method() Method { return s.method }

func (s *Stepper) ensureScratch(n int) {
	if len(s.scratch) != n {
		s.scratch = make([]r3.Vec, n)
		s.acc = make([]r3.Vec, n)
	}
}

// Step advances bodies in place by dt. Every acceleration is computed from a
// single consistent set of positions before any body is moved. On error no
// body has been moved, though accelerations may have been refreshed.
func (s *Stepper) Step(bodies []body.Body, dt float64) error {
	s.ensureScratch(len(bodies))

	if err := Accelerations(s.acc, positionsOf(s.scratch, bodies), bodies, s.workers); err != nil {
		return err
	}
	for i := range bodies {
		bodies[i].Acceleration = s.acc[i]
	}

	switch s.method {
	case Euler:
		stepEuler(bodies, dt)
	case EulerCromer:
		stepEulerCromer(bodies, dt)
	case EulerRichardson:
		return s.stepEulerRichardson(bodies, dt)
	case Verlet:
		return s.stepVerlet(bodies, dt)
	default:
		return fmt.Errorf("integrators: invalid method %d", int(s.method))
	}
	return nil
}

// Step advances bodies by one step of method m.
func Step(m Method, bodies []body.Body, dt float64, workers int) error {
	s, err := NewStepper(m, workers)
	if err != nil {
		return err
	}
	return s.Step(bodies, dt)
}
