package config

import (
	"math"
	"sort"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/integrators"
)

const (
	earthMass   = 5.972e24
	moonMass    = 7.342e22
	sunMass     = 1.989e30
	jupiterMass = 1.898e27

	geoRadius = 6371e3 + 36000e3
)

// circularSpeed is the speed of a light body in a circular orbit of radius r
// around mass m.
func circularSpeed(m, r float64) float64 {
	return math.Sqrt(body.G * m / r)
}

var Presets = map[string]*Config{
	"geostationary": {
		Name: "geostationary", Method: integrators.Verlet, Dt: DefaultDt, Steps: DefaultSteps,
		SnapshotInterval: 100, TrackLinearMomentum: true, TrackAngularMomentum: true,
		Bodies: []BodyConfig{
			{Name: "Earth", Mass: earthMass},
			{Name: "Satellite", Mass: 3500, Position: [3]float64{geoRadius}, Velocity: [3]float64{0, circularSpeed(earthMass, geoRadius)}},
		},
	},
	"earth-moon": {
		Name: "earth-moon", Method: integrators.Verlet, Dt: 60, Steps: 39312,
		SnapshotInterval: 100, TrackLinearMomentum: true, TrackAngularMomentum: true,
		Bodies: []BodyConfig{
			{Name: "Earth", Mass: earthMass},
			{Name: "Moon", Mass: moonMass, Position: [3]float64{3.844e8}, Velocity: [3]float64{0, 1022}},
		},
	},
	"sun-earth": {
		Name: "sun-earth", Method: integrators.Verlet, Dt: 3600, Steps: 8766,
		SnapshotInterval: 100, TrackLinearMomentum: true, TrackAngularMomentum: true,
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: sunMass},
			{Name: "Earth", Mass: earthMass, Position: [3]float64{1.496e11}, Velocity: [3]float64{0, 29780}},
		},
	},
	"sun-earth-jupiter": {
		Name: "sun-earth-jupiter", Method: integrators.EulerRichardson, Dt: 21600, Steps: 14610,
		SnapshotInterval: 100, TrackLinearMomentum: true, TrackAngularMomentum: true,
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: sunMass},
			{Name: "Earth", Mass: earthMass, Position: [3]float64{1.496e11}, Velocity: [3]float64{0, 29780}},
			{Name: "Jupiter", Mass: jupiterMass, Position: [3]float64{-7.785e11}, Velocity: [3]float64{0, -13070}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
