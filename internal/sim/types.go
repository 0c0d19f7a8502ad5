package sim

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSnapshotInterval is the number of steps between trajectory records.
const DefaultSnapshotInterval = 100

type Config struct {
	Name   string
	Method integrators.Method
	// Dt is the time step in seconds.
	Dt    float64
	Steps int
	// SnapshotInterval of zero means DefaultSnapshotInterval.
	SnapshotInterval     int
	Workers              int
	TrackLinearMomentum  bool
	TrackAngularMomentum bool
}

// Duration is the total simulated time in seconds.
func (c Config) Duration() float64 {
	return float64(c.Steps) * c.Dt
}

// Snapshot is a decoupled copy of every body at one instant.
type Snapshot struct {
	Step   int         `json:"step"`
	Time   float64     `json:"time"`
	Bodies []body.Body `json:"bodies"`
}

type Result struct {
	Trajectory []Snapshot
	Final      []body.Body
	StepsTaken int

	InitialLinearMomentum  r3.Vec
	FinalLinearMomentum    r3.Vec
	InitialAngularMomentum r3.Vec
	FinalAngularMomentum   r3.Vec
	LinearMomentumChange   float64
	AngularMomentumChange  float64
	EnergyDrift            float64
}

// Observer is notified with each snapshot as it is recorded. The snapshot
// must be treated as read-only.
type Observer interface {
	OnSnapshot(s Snapshot)
}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnSnapshot(s Snapshot) { f(s) }

// SnapshotCount is the number of trajectory records a run of steps produces.
func SnapshotCount(steps, interval int) int {
	if steps <= 0 {
		return 0
	}
	if interval <= 0 {
		interval = DefaultSnapshotInterval
	}
	return (steps + interval - 1) / interval
}

type Status int

const (
	Configured Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "unknown"
}
