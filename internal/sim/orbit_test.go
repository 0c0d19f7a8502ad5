package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	earthMass   = 5.972e24
	geoRadius   = 4.2371e7
	orbitPeriod = 86800.0
)

func geostationary() []body.Body {
	speed := math.Sqrt(body.G * earthMass / geoRadius)
	return []body.Body{
		body.New("Earth", earthMass, r3.Vec{}, r3.Vec{}),
		body.New("Satellite", 3500, r3.Vec{X: geoRadius}, r3.Vec{Y: speed}),
	}
}

func runOrbit(m integrators.Method, dt float64) *sim.Result {
	s, err := sim.New(sim.Config{
		Name:                 "geostationary",
		Method:               m,
		Dt:                   dt,
		Steps:                int(orbitPeriod / dt),
		TrackLinearMomentum:  true,
		TrackAngularMomentum: true,
	}, geostationary())
	Expect(err).NotTo(HaveOccurred())

	res, err := s.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return res
}

// closureError is the relative position and velocity error of the satellite
// after one orbital period.
func closureError(res *sim.Result) (pos, vel float64) {
	start := geostationary()[1]
	end := res.Final[1]
	pos = r3.Norm(r3.Sub(end.Position, start.Position)) / r3.Norm(start.Position)
	vel = r3.Norm(r3.Sub(end.Velocity, start.Velocity)) / r3.Norm(start.Velocity)
	return pos, vel
}

var _ = Describe("Geostationary orbit", func() {
	DescribeTable("returns the satellite to its starting state after one period",
		func(m integrators.Method, bound float64) {
			pos, vel := closureError(runOrbit(m, 8))
			Expect(pos).To(BeNumerically("<", bound))
			Expect(vel).To(BeNumerically("<", bound))
		},
		Entry("euler", integrators.Euler, 0.1),
		Entry("euler-cromer", integrators.EulerCromer, 1e-3),
		Entry("euler-richardson", integrators.EulerRichardson, 1e-4),
		Entry("verlet", integrators.Verlet, 1e-4),
	)

	It("is far more accurate with the second-order methods than with Euler", func() {
		eulerPos, eulerVel := closureError(runOrbit(integrators.Euler, 8))
		for _, m := range []integrators.Method{integrators.EulerRichardson, integrators.Verlet} {
			pos, vel := closureError(runOrbit(m, 8))
			Expect(pos).To(BeNumerically("<", eulerPos/100), m.String())
			Expect(vel).To(BeNumerically("<", eulerVel/100), m.String())
		}
	})

	It("keeps momentum drift near machine precision under Verlet", func() {
		res := runOrbit(integrators.Verlet, 8)

		Expect(res.Trajectory).To(HaveLen(sim.SnapshotCount(10850, sim.DefaultSnapshotInterval)))
		Expect(res.LinearMomentumChange / r3.Norm(res.InitialLinearMomentum)).To(BeNumerically("<", 1e-9))
		Expect(res.AngularMomentumChange / r3.Norm(res.InitialAngularMomentum)).To(BeNumerically("<", 1e-6))
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-4))
	})

	DescribeTable("angular momentum drift shrinks with the time step",
		func(m integrators.Method) {
			var drifts []float64
			for _, dt := range []float64{40, 20, 10} {
				drifts = append(drifts, runOrbit(m, dt).AngularMomentumChange)
			}
			Expect(drifts[1]).To(BeNumerically("<", drifts[0]))
			Expect(drifts[2]).To(BeNumerically("<", drifts[1]))
		},
		Entry("euler", integrators.Euler),
		Entry("euler-richardson", integrators.EulerRichardson),
		Entry("verlet", integrators.Verlet),
	)

	It("conserves angular momentum to rounding under Euler-Cromer", func() {
		res := runOrbit(integrators.EulerCromer, 40)
		Expect(res.AngularMomentumChange / r3.Norm(res.InitialAngularMomentum)).To(BeNumerically("<", 1e-12))
	})
})

var _ = Describe("Closed three-body system", func() {
	bodies := func() []body.Body {
		return []body.Body{
			body.New("Sun", 1.989e30, r3.Vec{}, r3.Vec{X: 1, Y: -2}),
			body.New("Earth", 5.972e24, r3.Vec{X: 1.496e11}, r3.Vec{Y: 29780}),
			body.New("Jupiter", 1.898e27, r3.Vec{X: -7.785e11, Z: 1e9}, r3.Vec{Y: -13070}),
		}
	}

	DescribeTable("conserves linear momentum",
		func(m integrators.Method) {
			s, err := sim.New(sim.Config{
				Method:              m,
				Dt:                  3600,
				Steps:               2000,
				TrackLinearMomentum: true,
			}, bodies())
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			scale := 0.0
			for _, b := range bodies() {
				scale += r3.Norm(b.LinearMomentum())
			}
			Expect(res.LinearMomentumChange).To(BeNumerically("<", 1e-9*scale))
			Expect(res.AngularMomentumChange).To(BeZero())
		},
		Entry("euler", integrators.Euler),
		Entry("euler-cromer", integrators.EulerCromer),
		Entry("euler-richardson", integrators.EulerRichardson),
		Entry("verlet", integrators.Verlet),
	)

	It("rejects coincident bodies as a degenerate configuration", func() {
		b := bodies()
		b[1].Position = b[0].Position

		s, err := sim.New(sim.Config{Method: integrators.Verlet, Dt: 1, Steps: 10}, b)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run(context.Background())
		Expect(err).To(MatchError(integrators.ErrDegenerate))
	})
})
