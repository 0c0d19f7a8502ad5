package analysis

import (
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAccuracy(t *testing.T) {
	ref := []body.Body{
		{Name: "a", Mass: 1, Position: r3.Vec{X: 100}, Velocity: r3.Vec{Y: 10}},
		{Name: "b", Mass: 1, Position: r3.Vec{X: -50, Z: 20}},
	}
	final := []body.Body{
		{Name: "a", Mass: 1, Position: r3.Vec{X: 101, Y: 7}, Velocity: r3.Vec{Y: 10}},
		{Name: "b", Mass: 1, Position: r3.Vec{X: -50, Z: 19}, Acceleration: r3.Vec{X: 3}},
	}

	rep, err := Accuracy(final, ref)
	require.NoError(t, err)

	// a.x 1%, a.vy 0%, b.x 0%, b.z 5%
	assert.Equal(t, 4, rep.Components)
	assert.InDelta(t, 5.0, rep.Max, 1e-9)
	assert.InDelta(t, 1.5, rep.Mean, 1e-9)
	assert.Equal(t, "b.position.z", rep.Worst)
}

func TestAccuracyExactMatch(t *testing.T) {
	ref := []body.Body{body.New("a", 1, r3.Vec{X: 3, Y: 4}, r3.Vec{Z: 1})}
	rep, err := Accuracy(ref, ref)
	require.NoError(t, err)
	assert.Zero(t, rep.Max)
	assert.Zero(t, rep.Mean)
	assert.Equal(t, 3, rep.Components)
}

func TestAccuracyErrors(t *testing.T) {
	a := body.New("a", 1, r3.Vec{X: 1}, r3.Vec{})
	b := body.New("b", 1, r3.Vec{X: 1}, r3.Vec{})

	_, err := Accuracy([]body.Body{a}, []body.Body{a, b})
	assert.Error(t, err)

	_, err = Accuracy([]body.Body{a}, []body.Body{b})
	assert.ErrorContains(t, err, `reference is "b"`)

	zero := body.New("a", 1, r3.Vec{}, r3.Vec{})
	_, err = Accuracy([]body.Body{a}, []body.Body{zero})
	assert.ErrorIs(t, err, ErrNoReference)
}
