package export

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func snap(step int, positions ...r3.Vec) sim.Snapshot {
	names := []string{"Sun", "Earth<1>"}
	s := sim.Snapshot{Step: step}
	for i, p := range positions {
		s.Bodies = append(s.Bodies, body.New(names[i], 1, p, r3.Vec{}))
	}
	return s
}

func TestTrajectoryToSVG(t *testing.T) {
	traj := []sim.Snapshot{
		snap(1, r3.Vec{}, r3.Vec{X: 1}),
		snap(101, r3.Vec{}, r3.Vec{Y: 1}),
		snap(201, r3.Vec{}, r3.Vec{X: -1}),
	}

	out := TrajectoryToSVG(traj, 400, 300)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Equal(t, 4, strings.Count(out, " L"), "two segments per three-point path")
	assert.Contains(t, out, "Earth&lt;1&gt;")
	assert.Contains(t, out, palette[0])
	assert.Contains(t, out, palette[1])

	// stationary body sits at the centre of the x range
	assert.Contains(t, out, `M200.0,`)
}

func TestTrajectoryToSVGSingleSnapshot(t *testing.T) {
	out := TrajectoryToSVG([]sim.Snapshot{snap(1, r3.Vec{X: 5})}, 100, 100)
	assert.NotContains(t, out, "<path")
	assert.Contains(t, out, `cx="50.0" cy="50.0"`)
}

func TestTrajectoryToSVGEmpty(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG(nil, 100, 100))
	assert.Empty(t, TrajectoryToSVG([]sim.Snapshot{{Step: 1}}, 100, 100))
}
