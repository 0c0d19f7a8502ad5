package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"golang.org/x/sync/errgroup"
)

type Experiment struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg.Clone(), logger: logger}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Setup builds the simulation and attaches a debug-level snapshot logger.
func (e *Experiment) Setup() (*sim.Simulation, error) {
	s, err := sim.New(e.cfg.Sim(), e.cfg.BodyList())
	if err != nil {
		return nil, fmt.Errorf("setup %s: %w", e.cfg.Name, err)
	}

	log := e.logger.With("name", e.cfg.Name, "method", e.cfg.Method.String())
	s.AddObserver(sim.ObserverFunc(func(snap sim.Snapshot) {
		log.Debug("snapshot", "step", snap.Step, "time", snap.Time)
	}))
	return s, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	s, err := e.Setup()
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, s)
}

// Execute runs a simulation obtained from Setup and logs its outcome.
func (e *Experiment) Execute(ctx context.Context, s *sim.Simulation) (*sim.Result, error) {
	log := e.logger.With("name", e.cfg.Name, "method", e.cfg.Method.String())
	log.Info("run started",
		"bodies", len(e.cfg.Bodies),
		"dt", e.cfg.Dt,
		"steps", e.cfg.Steps,
		"duration", e.cfg.Sim().Duration())

	start := time.Now()
	res, err := s.Run(ctx)
	if err != nil {
		log.Error("run failed", "err", err)
		return nil, err
	}

	log.Info("run completed",
		"elapsed", time.Since(start),
		"snapshots", len(res.Trajectory),
		"linear_momentum_change", res.LinearMomentumChange,
		"angular_momentum_change", res.AngularMomentumChange,
		"energy_drift", res.EnergyDrift)
	return res, nil
}

// Outcome is one member of a comparison or sweep. Err is set when that
// member failed; the others are still reported.
type Outcome struct {
	Method  integrators.Method
	Dt      float64
	Steps   int
	Result  *sim.Result
	Err     error
	Elapsed time.Duration
}

// Compare runs cfg once per method concurrently. Per-run numerical failures
// are recorded in the outcome; only cancellation aborts the comparison.
func Compare(ctx context.Context, cfg *config.Config, methods []integrators.Method, logger *slog.Logger) ([]Outcome, error) {
	if len(methods) == 0 {
		methods = integrators.Methods()
	}

	variants := make([]*config.Config, len(methods))
	for i, m := range methods {
		c := cfg.Clone()
		c.Method = m
		variants[i] = c
	}
	return runAll(ctx, variants, logger)
}

// Sweep reruns cfg at each time step, keeping the simulated duration fixed.
func Sweep(ctx context.Context, cfg *config.Config, dts []float64, logger *slog.Logger) ([]Outcome, error) {
	duration := cfg.Sim().Duration()

	variants := make([]*config.Config, len(dts))
	for i, dt := range dts {
		if !(dt > 0) || math.IsInf(dt, 0) {
			return nil, fmt.Errorf("%w, got %g", sim.ErrInvalidTimeStep, dt)
		}
		c := cfg.Clone()
		c.Dt = dt
		c.Steps = int(math.Max(1, math.Round(duration/dt)))
		variants[i] = c
	}
	return runAll(ctx, variants, logger)
}

func runAll(ctx context.Context, variants []*config.Config, logger *slog.Logger) ([]Outcome, error) {
	out := make([]Outcome, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range variants {
		g.Go(func() error {
			start := time.Now()
			res, err := New(c, logger).Run(ctx)
			out[i] = Outcome{
				Method:  c.Method,
				Dt:      c.Dt,
				Steps:   c.Steps,
				Result:  res,
				Err:     err,
				Elapsed: time.Since(start),
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
