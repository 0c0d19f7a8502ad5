package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/spatial/r3"
)

// loadConfig starts from the preset, replaces it with the config file when
// one is given, and then applies only the flags the user actually set.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if flags.Changed("method") {
		m, err := integrators.ParseMethod(method)
		if err != nil {
			return nil, err
		}
		cfg.Method = m
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("interval") {
		cfg.SnapshotInterval = interval
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("track-linear") {
		cfg.TrackLinearMomentum = trackLin
	}
	if flags.Changed("track-angular") {
		cfg.TrackAngularMomentum = trackAng
	}
	if flags.Changed("name") {
		cfg.Name = runName
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(cfg, newLogger())
	s, err := exp.Setup()
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render("simulation"))
	fmt.Println(s)
	fmt.Println()

	start := time.Now()
	var result *sim.Result
	if live {
		result, err = tui.Run(ctx, s, func(ctx context.Context) (*sim.Result, error) {
			return exp.Execute(ctx, s)
		})
	} else {
		result, err = exp.Execute(ctx, s)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(titleStyle.Render(fmt.Sprintf("final state after %gs", cfg.Sim().Duration())))
	for _, b := range result.Final {
		fmt.Println(" ", b)
	}
	fmt.Println()

	printDrift("linear momentum change", result.LinearMomentumChange, cfg.TrackLinearMomentum)
	printDrift("angular momentum change", result.AngularMomentumChange, cfg.TrackAngularMomentum)
	fmt.Printf("  %-26s %.6e\n", "relative energy drift", result.EnergyDrift)

	if closedOrbit {
		ref, err := withAccelerations(cfg.BodyList())
		if err != nil {
			return err
		}
		rep, err := analysis.Accuracy(result.Final, ref)
		if err != nil {
			return err
		}
		fmt.Printf("  %-26s %s (%s)\n", "max inaccuracy", percent(rep.Max), rep.Worst)
		fmt.Printf("  %-26s %s\n", "mean inaccuracy", percent(rep.Mean))
	}

	fmt.Println(dimStyle.Render(fmt.Sprintf("\ncompleted in %v, %d snapshots", elapsed, len(result.Trajectory))))

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Sim(), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", goodStyle.Render(runID))
	return nil
}

func printDrift(label string, v float64, tracked bool) {
	if !tracked {
		fmt.Printf("  %-26s %s\n", label, dimStyle.Render("not tracked"))
		return
	}
	fmt.Printf("  %-26s %.6e\n", label, v)
}

func percent(p float64) string {
	s := fmt.Sprintf("%.6g%%", p)
	if p > 1 {
		return warnStyle.Render(s)
	}
	return goodStyle.Render(s)
}

// withAccelerations fills in the acceleration each body feels in the given
// configuration, so a closed orbit can be checked against all three vectors.
func withAccelerations(bodies []body.Body) ([]body.Body, error) {
	positions := make([]r3.Vec, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	acc := make([]r3.Vec, len(bodies))
	if err := integrators.Accelerations(acc, positions, bodies, 1); err != nil {
		return nil, err
	}
	for i := range bodies {
		bodies[i].Acceleration = acc[i]
	}
	return bodies, nil
}
