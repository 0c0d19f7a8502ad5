package sim

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"gonum.org/v1/gonum/spatial/r3"
)

type Simulation struct {
	cfg       Config
	bodies    []body.Body
	stepper   *integrators.Stepper
	observers []Observer
	status    Status

	initialLinear  r3.Vec
	initialAngular r3.Vec
	initialEnergy  float64

	linearChange  float64
	angularChange float64
}

// New validates cfg and bodies and captures the momentum baselines. The
// bodies are copied; the caller's slice is never modified.
func New(cfg Config, bodies []body.Body) (*Simulation, error) {
	if cfg.SnapshotInterval == 0 {
		cfg.SnapshotInterval = DefaultSnapshotInterval
	}
	stepper, err := integrators.NewStepper(cfg.Method, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMethod, err)
	}
	if err := validate(cfg, bodies); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:     cfg,
		bodies:  make([]body.Body, len(bodies)),
		stepper: stepper,
	}
	copy(s.bodies, bodies)

	s.initialLinear = s.linearMomentum()
	s.initialAngular = s.angularMomentum()
	s.initialEnergy = metrics.Energy(s.bodies)
	return s, nil
}

func validate(cfg Config, bodies []body.Body) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidTimeStep, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidStepCount, cfg.Steps)
	}
	if cfg.SnapshotInterval < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSnapshotInterval, cfg.SnapshotInterval)
	}
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	for _, b := range bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("%w: %s has mass %g", ErrInvalidMass, b.Name, b.Mass)
		}
		if !b.IsFinite() {
			return fmt.Errorf("%w: %s", ErrInvalidState, b.Name)
		}
	}
	return nil
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Config() Config { return s.cfg }
func (s *Simulation) Status() Status { return s.status }

// Bodies returns a copy of the current body states.
func (s *Simulation) Bodies() []body.Body {
	out := make([]body.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// InitialLinearMomentum is the total captured at construction, or the zero
// vector when linear momentum is not tracked.
func (s *Simulation) InitialLinearMomentum() r3.Vec { return s.initialLinear }

// InitialAngularMomentum is the total captured at construction, or the zero
// vector when angular momentum is not tracked.
func (s *Simulation) InitialAngularMomentum() r3.Vec { return s.initialAngular }

// LinearMomentumChange reports the drift; ok is false until Run completes.
func (s *Simulation) LinearMomentumChange() (drift float64, ok bool) {
	return s.linearChange, s.status == Completed
}

// AngularMomentumChange reports the drift; ok is false until Run completes.
func (s *Simulation) AngularMomentumChange() (drift float64, ok bool) {
	return s.angularChange, s.status == Completed
}

func (s *Simulation) linearMomentum() r3.Vec {
	if !s.cfg.TrackLinearMomentum {
		return r3.Vec{}
	}
	return metrics.LinearMomentum(s.bodies)
}

func (s *Simulation) angularMomentum() r3.Vec {
	if !s.cfg.TrackAngularMomentum {
		return r3.Vec{}
	}
	return metrics.AngularMomentum(s.bodies)
}

// Run advances every body cfg.Steps times. It may be called once. Any
// numerical failure aborts the run and no result is returned.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	if s.status != Configured {
		return nil, fmt.Errorf("%w (status %s)", ErrAlreadyRun, s.status)
	}
	s.status = Running

	dt := s.cfg.Dt
	trajectory := make([]Snapshot, 0, SnapshotCount(s.cfg.Steps, s.cfg.SnapshotInterval))

	for step := 1; step <= s.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			s.status = Failed
			return nil, ctx.Err()
		default:
		}

		if err := s.stepper.Step(s.bodies, dt); err != nil {
			s.status = Failed
			return nil, &SimulationError{Step: step, Time: float64(step-1) * dt, Wrapped: err}
		}
		if err := s.checkFinite(); err != nil {
			s.status = Failed
			return nil, &SimulationError{Step: step, Time: float64(step) * dt, Wrapped: err}
		}

		if (step-1)%s.cfg.SnapshotInterval == 0 {
			snap := s.snapshot(step)
			trajectory = append(trajectory, snap)
			for _, o := range s.observers {
				o.OnSnapshot(snap)
			}
		}
	}

	finalLinear := s.linearMomentum()
	finalAngular := s.angularMomentum()
	s.linearChange = metrics.Drift(s.initialLinear, finalLinear)
	s.angularChange = metrics.Drift(s.initialAngular, finalAngular)
	s.status = Completed

	return &Result{
		Trajectory:             trajectory,
		Final:                  s.Bodies(),
		StepsTaken:             s.cfg.Steps,
		InitialLinearMomentum:  s.initialLinear,
		FinalLinearMomentum:    finalLinear,
		InitialAngularMomentum: s.initialAngular,
		FinalAngularMomentum:   finalAngular,
		LinearMomentumChange:   s.linearChange,
		AngularMomentumChange:  s.angularChange,
		EnergyDrift:            metrics.RelativeDrift(s.initialEnergy, metrics.Energy(s.bodies)),
	}, nil
}

func (s *Simulation) snapshot(step int) Snapshot {
	return Snapshot{
		Step:   step,
		Time:   float64(step) * s.cfg.Dt,
		Bodies: s.Bodies(),
	}
}

func (s *Simulation) checkFinite() error {
	for _, b := range s.bodies {
		if !b.IsFinite() {
			return fmt.Errorf("%w: %s", ErrDiverged, b.Name)
		}
	}
	return nil
}

func (s *Simulation) String() string {
	names := make([]string, len(s.bodies))
	for i, b := range s.bodies {
		names[i] = b.Name
	}
	return fmt.Sprintf("Name: %s\nMethod: %s\nBodies: %s\nLinear momentum tracked: %s\nAngular momentum tracked: %s\nTime: %gs over %d steps of %gs",
		s.cfg.Name, s.cfg.Method, strings.Join(names, ", "),
		yesNo(s.cfg.TrackLinearMomentum), yesNo(s.cfg.TrackAngularMomentum),
		s.cfg.Duration(), s.cfg.Steps, s.cfg.Dt)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
