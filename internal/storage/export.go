package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

var bodyHeader = []string{"name", "mass", "x", "y", "z", "vx", "vy", "vz", "ax", "ay", "az"}

type ExportData struct {
	Run        RunMetadata    `json:"run"`
	Trajectory []sim.Snapshot `json:"trajectory"`
	Final      []body.Body    `json:"final"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, traj []sim.Snapshot, final []body.Body) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Trajectory: traj, Final: final})
}

// ExportCSV writes one row per body per snapshot.
func ExportCSV(w io.Writer, traj []sim.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"step", "time"}, bodyHeader...)); err != nil {
		return err
	}
	for _, snap := range traj {
		prefix := []string{strconv.Itoa(snap.Step), formatFloat(snap.Time)}
		for _, b := range snap.Bodies {
			if err := cw.Write(append(prefix[:2:2], bodyRecord(b)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func bodyRecord(b body.Body) []string {
	rec := []string{b.Name, formatFloat(b.Mass)}
	for _, v := range []r3.Vec{b.Position, b.Velocity, b.Acceleration} {
		rec = append(rec, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	return rec
}

func parseBodyRecord(rec []string) (body.Body, error) {
	if len(rec) != len(bodyHeader) {
		return body.Body{}, fmt.Errorf("want %d fields, got %d", len(bodyHeader), len(rec))
	}
	vals := make([]float64, len(rec)-1)
	for i, field := range rec[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return body.Body{}, err
		}
		vals[i] = v
	}
	return body.Body{
		Name:         rec[0],
		Mass:         vals[0],
		Position:     r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]},
		Velocity:     r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]},
		Acceleration: r3.Vec{X: vals[7], Y: vals[8], Z: vals[9]},
	}, nil
}

// formatFloat keeps full float64 precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
