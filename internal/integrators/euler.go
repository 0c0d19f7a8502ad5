package integrators

import "github.com/san-kum/gravsim/internal/body"

func stepEuler(bodies []body.Body, dt float64) {
	for i := range bodies {
		bodies[i].StepEuler(dt)
	}
}

func stepEulerCromer(bodies []body.Body, dt float64) {
	for i := range bodies {
		bodies[i].StepEulerCromer(dt)
	}
}
