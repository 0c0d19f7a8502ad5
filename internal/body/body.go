// Package body models a gravitating point mass and its single-body update
// rules for each supported stepping scheme.
//
// Body is a plain value type: assigning or copying a Body (or a []Body with
// the builtin copy) yields an independent snapshot of its state.
package body

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// G is the Newtonian gravitational constant in m³ kg⁻¹ s⁻².
const G = 6.6743e-11

type Body struct {
	Name         string  `json:"name" yaml:"name"`
	Mass         float64 `json:"mass" yaml:"mass"`
	Position     r3.Vec  `json:"position" yaml:"position"`
	Velocity     r3.Vec  `json:"velocity" yaml:"velocity"`
	Acceleration r3.Vec  `json:"acceleration" yaml:"acceleration"`
}

func New(name string, mass float64, position, velocity r3.Vec) Body {
	return Body{
		Name:     name,
		Mass:     mass,
		Position: position,
		Velocity: velocity,
	}
}

// AccelerationAt returns the acceleration felt at point p due to a source of
// the given mass at point src. Coincident points give a non-finite result.
func AccelerationAt(p, src r3.Vec, mass float64) r3.Vec {
	diff := r3.Sub(p, src)
	r := r3.Norm(diff)
	return r3.Scale(-G*mass/(r*r*r), diff)
}

// GravitationalAccelerationFrom returns the pull of other on b.
func (b Body) GravitationalAccelerationFrom(other Body) r3.Vec {
	return AccelerationAt(b.Position, other.Position, other.Mass)
}

// StepEuler advances with the pre-step acceleration for both updates.
func (b *Body) StepEuler(dt float64) {
	b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
	b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, b.Acceleration))
}

// StepEulerCromer updates velocity first and moves with the new velocity.
func (b *Body) StepEulerCromer(dt float64) {
	b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, b.Acceleration))
	b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
}

// StepEulerRichardson applies the corrector half of the Euler-Richardson
// scheme. midAcc must be evaluated at the half-step positions of every body.
func (b *Body) StepEulerRichardson(dt float64, midAcc r3.Vec) {
	vMid := r3.Add(b.Velocity, r3.Scale(0.5*dt, b.Acceleration))
	b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, midAcc))
	b.Position = r3.Add(b.Position, r3.Scale(dt, vMid))
}

// StepVerlet applies a velocity Verlet step. endAcc must be evaluated at the
// predicted end-of-step positions of every body.
func (b *Body) StepVerlet(dt float64, endAcc r3.Vec) {
	drift := r3.Add(r3.Scale(dt, b.Velocity), r3.Scale(0.5*dt*dt, b.Acceleration))
	b.Position = r3.Add(b.Position, drift)
	b.Velocity = r3.Add(b.Velocity, r3.Scale(0.5*dt, r3.Add(endAcc, b.Acceleration)))
}

func (b Body) LinearMomentum() r3.Vec {
	return r3.Scale(b.Mass, b.Velocity)
}

// AngularMomentum is taken about the coordinate origin.
func (b Body) AngularMomentum() r3.Vec {
	return r3.Cross(b.Position, b.LinearMomentum())
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r3.Norm2(b.Velocity)
}

func (b Body) IsFinite() bool {
	return IsFinite(b.Position) && IsFinite(b.Velocity) && IsFinite(b.Acceleration)
}

func IsFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (b Body) String() string {
	return fmt.Sprintf("%s: mass=%.3e pos=%s vel=%s acc=%s",
		b.Name, b.Mass, formatVec(b.Position), formatVec(b.Velocity), formatVec(b.Acceleration))
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("[%.6e %.6e %.6e]", v.X, v.Y, v.Z)
}
