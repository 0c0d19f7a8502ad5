package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt    = 8.0
	DefaultSteps = 10850
)

type Config struct {
	Name                 string             `yaml:"name"`
	Method               integrators.Method `yaml:"method"`
	Dt                   float64            `yaml:"dt"`
	Steps                int                `yaml:"steps"`
	SnapshotInterval     int                `yaml:"snapshot_interval"`
	Workers              int                `yaml:"workers,omitempty"`
	TrackLinearMomentum  bool               `yaml:"track_linear_momentum"`
	TrackAngularMomentum bool               `yaml:"track_angular_momentum"`
	Bodies               []BodyConfig       `yaml:"bodies"`
}

// BodyConfig holds SI values: kg, m and m/s.
type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
}

func DefaultConfig() *Config {
	return GetPreset("geostationary")
}

// Load reads a complete run description. Presets are not merged in: keys
// the file omits take the zero value, except method, dt, steps and
// snapshot_interval, which fall back to the package defaults. The name
// defaults to the file's base name. A file must list at least one body.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Name:             strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Method:           integrators.Verlet,
		Dt:               DefaultDt,
		Steps:            DefaultSteps,
		SnapshotInterval: sim.DefaultSnapshotInterval,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Bodies) == 0 {
		return nil, fmt.Errorf("%s: %w", path, sim.ErrNoBodies)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sim converts the file form into the run configuration.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		Name:                 c.Name,
		Method:               c.Method,
		Dt:                   c.Dt,
		Steps:                c.Steps,
		SnapshotInterval:     c.SnapshotInterval,
		Workers:              c.Workers,
		TrackLinearMomentum:  c.TrackLinearMomentum,
		TrackAngularMomentum: c.TrackAngularMomentum,
	}
}

// BodyList returns the bodies in file order.
func (c *Config) BodyList() []body.Body {
	bodies := make([]body.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = body.New(b.Name, b.Mass, vec(b.Position), vec(b.Velocity))
	}
	return bodies
}

func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &out
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
