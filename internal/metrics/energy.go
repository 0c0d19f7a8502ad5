package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// Energy returns total kinetic plus pairwise gravitational potential energy.
func Energy(bodies []body.Body) float64 {
	ke, pe := 0.0, 0.0
	for i := range bodies {
		ke += bodies[i].KineticEnergy()
		for j := i + 1; j < len(bodies); j++ {
			r := r3.Norm(r3.Sub(bodies[i].Position, bodies[j].Position))
			pe -= body.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return ke + pe
}

// RelativeDrift is |final-initial| / |initial|, or zero when initial is zero.
func RelativeDrift(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return math.Abs(final-initial) / math.Abs(initial)
}
