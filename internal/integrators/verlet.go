package integrators

import (
	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// stepVerlet predicts every end-of-step position as p + (v + a*dt)*dt,
// evaluates the force law there, then applies the velocity Verlet update.
func (s *Stepper) stepVerlet(bodies []body.Body, dt float64) error {
	for i := range bodies {
		b := &bodies[i]
		s.scratch[i] = r3.Add(b.Position, r3.Scale(dt, r3.Add(b.Velocity, r3.Scale(dt, b.Acceleration))))
	}
	if err := Accelerations(s.acc, s.scratch, bodies, s.workers); err != nil {
		return err
	}
	for i := range bodies {
		bodies[i].StepVerlet(dt, s.acc[i])
	}
	return nil
}
