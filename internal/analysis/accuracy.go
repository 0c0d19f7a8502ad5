package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrNoReference = errors.New("no non-zero reference components")

type Report struct {
	// Max and Mean are percentages.
	Max        float64
	Mean       float64
	Components int
	// Worst names the component that produced Max, e.g. "Moon.velocity.y".
	Worst string
}

// Accuracy compares position, velocity and acceleration of every body in
// final against the body at the same index in reference. Each non-zero
// reference component r contributes 100*|1 - f/r|.
func Accuracy(final, reference []body.Body) (Report, error) {
	if len(final) != len(reference) {
		return Report{}, fmt.Errorf("have %d bodies, reference has %d", len(final), len(reference))
	}

	var rep Report
	var sum float64
	for i := range final {
		f, ref := final[i], reference[i]
		if f.Name != ref.Name {
			return Report{}, fmt.Errorf("body %d is %q, reference is %q", i, f.Name, ref.Name)
		}

		fields := []struct {
			name string
			got  r3.Vec
			want r3.Vec
		}{
			{"position", f.Position, ref.Position},
			{"velocity", f.Velocity, ref.Velocity},
			{"acceleration", f.Acceleration, ref.Acceleration},
		}
		for _, fld := range fields {
			got := [3]float64{fld.got.X, fld.got.Y, fld.got.Z}
			want := [3]float64{fld.want.X, fld.want.Y, fld.want.Z}
			for k, axis := range "xyz" {
				if want[k] == 0 {
					continue
				}
				pct := 100 * math.Abs(1-got[k]/want[k])
				sum += pct
				rep.Components++
				if pct > rep.Max || rep.Worst == "" {
					rep.Max = pct
					rep.Worst = fmt.Sprintf("%s.%s.%c", f.Name, fld.name, axis)
				}
			}
		}
	}

	if rep.Components == 0 {
		return Report{}, ErrNoReference
	}
	rep.Mean = sum / float64(rep.Components)
	return rep, nil
}
