package main

import (
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/spf13/cobra"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	t := newTable(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Time", "Method", "Bodies", "Dt", "Steps", "Duration"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			len(run.Bodies),
			fmt.Sprintf("%gs", run.Dt),
			run.Steps,
			fmt.Sprintf("%gs", run.Duration),
		})
	}
	t.Render()
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(meta.ID))
	t := newTable(os.Stdout)
	t.AppendRows([]table.Row{
		{"name", meta.Name},
		{"timestamp", meta.Timestamp.Format("2006-01-02 15:04:05")},
		{"method", meta.Method},
		{"dt", fmt.Sprintf("%gs", meta.Dt)},
		{"steps", meta.Steps},
		{"duration", fmt.Sprintf("%gs", meta.Duration)},
		{"snapshots", fmt.Sprintf("%d (every %d steps)", meta.Snapshots, meta.SnapshotInterval)},
		{"linear momentum change", driftCell(meta.LinearMomentumChange, meta.TrackLinearMomentum)},
		{"angular momentum change", driftCell(meta.AngularMomentumChange, meta.TrackAngularMomentum)},
		{"energy drift", fmt.Sprintf("%.6e", meta.EnergyDrift)},
	})
	t.Render()

	bt := newTable(os.Stdout)
	bt.AppendHeader(table.Row{"Body", "Mass", "Position", "Velocity", "Acceleration"})
	for _, b := range final {
		bt.AppendRow(table.Row{
			b.Name,
			fmt.Sprintf("%.4e", b.Mass),
			fmt.Sprintf("%.4e, %.4e, %.4e", b.Position.X, b.Position.Y, b.Position.Z),
			fmt.Sprintf("%.4e, %.4e, %.4e", b.Velocity.X, b.Velocity.Y, b.Velocity.Z),
			fmt.Sprintf("%.4e, %.4e, %.4e", b.Acceleration.X, b.Acceleration.Y, b.Acceleration.Z),
		})
	}
	bt.Render()
	return nil
}

func driftCell(v float64, tracked bool) string {
	if !tracked {
		return "not tracked"
	}
	return fmt.Sprintf("%.6e", v)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(traj) < 2 {
		return fmt.Errorf("need at least two snapshots to plot, have %d", len(traj))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("snapshots: %d\n\n", len(traj))

	plotted := 0
	for i, name := range meta.Bodies {
		if plotBody != "" && name != plotBody {
			continue
		}
		for _, axis := range []string{"x", "y"} {
			fmt.Println(asciigraph.Plot(series(traj, i, axis),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s %s position (m)", name, axis)),
			))
			fmt.Println()
		}
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("no body named %q in run %s", plotBody, meta.ID)
	}
	return nil
}

func series(traj []sim.Snapshot, idx int, axis string) []float64 {
	data := make([]float64, len(traj))
	for i, snap := range traj {
		p := snap.Bodies[idx].Position
		if axis == "x" {
			data[i] = p.X
		} else {
			data[i] = p.Y
		}
	}
	return data
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, traj, final)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(traj) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.ExportCSV(os.Stdout, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(traj, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to render")
	}
	if svgOut == "" {
		_, err = fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
