package integrators

import (
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrDegenerate indicates two bodies share a position, where the force law is undefined.
	ErrDegenerate = errors.New("integrators: degenerate configuration (zero separation)")

	// ErrNonFinite indicates an acceleration overflowed or became NaN.
	ErrNonFinite = errors.New("integrators: non-finite acceleration")
)

// minChunk is the smallest number of bodies handed to one worker.
const minChunk = 16

// Accelerations fills dst[i] with the net pull on body i from every other
// body, evaluating all bodies at the supplied positions. positions and dst
// must have len(bodies) entries. dst is written only for indices being
// computed and must not alias positions.
func Accelerations(dst, positions []r3.Vec, bodies []body.Body, workers int) error {
	if len(dst) != len(bodies) || len(positions) != len(bodies) {
		return fmt.Errorf("integrators: need %d positions and accelerations, got %d and %d",
			len(bodies), len(positions), len(dst))
	}
	return parallelFor(len(bodies), workers, func(start, end int) error {
		for i := start; i < end; i++ {
			acc, err := accelerationOn(i, positions, bodies)
			if err != nil {
				return err
			}
			dst[i] = acc
		}
		return nil
	})
}

func accelerationOn(i int, positions []r3.Vec, bodies []body.Body) (r3.Vec, error) {
	var acc r3.Vec
	p := positions[i]
	for j := range bodies {
		if j == i {
			continue
		}
		if positions[j] == p {
			return r3.Vec{}, fmt.Errorf("%w: %s and %s at %v", ErrDegenerate, bodies[i].Name, bodies[j].Name, p)
		}
		acc = r3.Add(acc, body.AccelerationAt(p, positions[j], bodies[j].Mass))
	}
	if !body.IsFinite(acc) {
		return r3.Vec{}, fmt.Errorf("%w on %s", ErrNonFinite, bodies[i].Name)
	}
	return acc, nil
}

// parallelFor splits [0, n) into contiguous chunks. Each index is handled by
// exactly one chunk, so results do not depend on the worker count.
func parallelFor(n, workers int, fn func(start, end int) error) error {
	if workers <= 1 || n <= minChunk {
		return fn(0, n)
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error { return fn(start, end) })
	}
	return g.Wait()
}

func positionsOf(dst []r3.Vec, bodies []body.Body) []r3.Vec {
	for i := range bodies {
		dst[i] = bodies[i].Position
	}
	return dst
}
