// Package metrics computes conserved-quantity totals for a body set and the
// drift between two such totals.
package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// LinearMomentum is the vector sum of m*v over all bodies.
func LinearMomentum(bodies []body.Body) r3.Vec {
	var p r3.Vec
	for _, b := range bodies {
		p = r3.Add(p, b.LinearMomentum())
	}
	return p
}

// AngularMomentum is the vector sum of r x (m*v) about the origin.
func AngularMomentum(bodies []body.Body) r3.Vec {
	var l r3.Vec
	for _, b := range bodies {
		l = r3.Add(l, b.AngularMomentum())
	}
	return l
}

// Drift is the absolute change in vector magnitude from initial to final.
// It is not a directional measure.
func Drift(initial, final r3.Vec) float64 {
	return math.Abs(r3.Norm(final) - r3.Norm(initial))
}
