package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"euler", Euler},
		{"Euler-Cromer", EulerCromer},
		{"euler_richardson", EulerRichardson},
		{"EulerRichardson", EulerRichardson},
		{" verlet ", Verlet},
		{"4", Verlet},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMethod("rk4")
	assert.Error(t, err)
}

func TestMethodText(t *testing.T) {
	for _, m := range Methods() {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Method
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	assert.False(t, Method(0).Valid())
	assert.Equal(t, "method(9)", Method(9).String())
	_, err := Method(9).MarshalText()
	assert.Error(t, err)
}

func ring(n int) []body.Body {
	bodies := make([]body.Body, n)
	for i := range bodies {
		angle := 2 * math.Pi * float64(i) / float64(n)
		bodies[i] = body.New(
			"b",
			1e20*float64(i+1),
			r3.Vec{X: 1e8 * math.Cos(angle), Y: 1e8 * math.Sin(angle), Z: 1e6 * float64(i%3)},
			r3.Vec{X: -100 * math.Sin(angle), Y: 100 * math.Cos(angle)},
		)
	}
	return bodies
}

func TestAccelerationsPairwise(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 1e20, r3.Vec{}, r3.Vec{}),
		body.New("b", 3e20, r3.Vec{X: 1e6}, r3.Vec{}),
	}
	acc := make([]r3.Vec, 2)
	pos := positionsOf(make([]r3.Vec, 2), bodies)

	require.NoError(t, Accelerations(acc, pos, bodies, 1))

	assert.Greater(t, acc[0].X, 0.0)
	assert.Less(t, acc[1].X, 0.0)
	assert.InEpsilon(t, bodies[0].Mass*acc[0].X, -bodies[1].Mass*acc[1].X, 1e-12)
	assert.Equal(t, bodies[0].GravitationalAccelerationFrom(bodies[1]), acc[0])
}

func TestAccelerationsParallelMatchesSerial(t *testing.T) {
	bodies := ring(67)
	pos := positionsOf(make([]r3.Vec, len(bodies)), bodies)

	serial := make([]r3.Vec, len(bodies))
	parallel := make([]r3.Vec, len(bodies))
	require.NoError(t, Accelerations(serial, pos, bodies, 1))
	require.NoError(t, Accelerations(parallel, pos, bodies, 4))

	assert.Equal(t, serial, parallel)
}

func TestAccelerationsDegenerate(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 1, r3.Vec{X: 5}, r3.Vec{}),
		body.New("b", 1, r3.Vec{X: 5}, r3.Vec{}),
	}
	acc := make([]r3.Vec, 2)

	err := Accelerations(acc, positionsOf(make([]r3.Vec, 2), bodies), bodies, 1)
	require.ErrorIs(t, err, ErrDegenerate)
	assert.Contains(t, err.Error(), "a and b")
}

func TestAccelerationsLengthMismatch(t *testing.T) {
	bodies := ring(3)
	err := Accelerations(make([]r3.Vec, 2), make([]r3.Vec, 3), bodies, 1)
	assert.Error(t, err)
}

func TestStepMatchesBodyRules(t *testing.T) {
	bodies := ring(3)
	manual := make([]body.Body, len(bodies))
	copy(manual, bodies)

	require.NoError(t, Step(EulerCromer, bodies, 10, 1))

	for i := range manual {
		var acc r3.Vec
		for j := range manual {
			if i != j {
				acc = r3.Add(acc, manual[i].GravitationalAccelerationFrom(manual[j]))
			}
		}
		manual[i].Acceleration = acc
	}
	for i := range manual {
		manual[i].StepEulerCromer(10)
	}

	assert.Equal(t, manual, bodies)
}

func TestStepConservesLinearMomentum(t *testing.T) {
	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			bodies := ring(4)
			before, scale := totalMomentum(bodies)

			s, err := NewStepper(m, 1)
			require.NoError(t, err)
			for i := 0; i < 200; i++ {
				require.NoError(t, s.Step(bodies, 60))
			}

			after, _ := totalMomentum(bodies)
			assert.Less(t, r3.Norm(r3.Sub(after, before)), 1e-12*scale)
		})
	}
}

func TestStepDegenerateLeavesPositions(t *testing.T) {
	bodies := []body.Body{
		body.New("a", 1, r3.Vec{}, r3.Vec{X: 1}),
		body.New("b", 1, r3.Vec{}, r3.Vec{X: -1}),
	}

	err := Step(Verlet, bodies, 1, 1)
	require.ErrorIs(t, err, ErrDegenerate)
	assert.Equal(t, r3.Vec{}, bodies[0].Position)
	assert.Equal(t, r3.Vec{}, bodies[1].Position)
}

func TestNewStepperInvalidMethod(t *testing.T) {
	_, err := NewStepper(Method(42), 1)
	assert.Error(t, err)
}

func totalMomentum(bodies []body.Body) (r3.Vec, float64) {
	var p r3.Vec
	scale := 0.0
	for _, b := range bodies {
		p = r3.Add(p, b.LinearMomentum())
		scale += r3.Norm(b.LinearMomentum())
	}
	return p, scale
}
