package integrators

import (
	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// stepEulerRichardson predicts every body at the half step, evaluates the
// force law there, then corrects each body with its midpoint acceleration.
func (s *Stepper) stepEulerRichardson(bodies []body.Body, dt float64) error {
	for i := range bodies {
		s.scratch[i] = r3.Add(bodies[i].Position, r3.Scale(0.5*dt, bodies[i].Velocity))
	}
	if err := Accelerations(s.acc, s.scratch, bodies, s.workers); err != nil {
		return err
	}
	for i := range bodies {
		bodies[i].StepEulerRichardson(dt, s.acc[i])
	}
	return nil
}
