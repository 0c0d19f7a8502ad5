package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.json"
	finalFile      = "final.csv"
)

var removeAll = os.RemoveAll

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Timestamp             time.Time `json:"timestamp"`
	Method                string    `json:"method"`
	Dt                    float64   `json:"dt"`
	Steps                 int       `json:"steps"`
	Duration              float64   `json:"duration"`
	SnapshotInterval      int       `json:"snapshot_interval"`
	Snapshots             int       `json:"snapshots"`
	Bodies                []string  `json:"bodies"`
	TrackLinearMomentum   bool      `json:"track_linear_momentum"`
	TrackAngularMomentum  bool      `json:"track_angular_momentum"`
	LinearMomentumChange  float64   `json:"linear_momentum_change"`
	AngularMomentumChange float64   `json:"angular_momentum_change"`
	EnergyDrift           float64   `json:"energy_drift"`
}

// Save writes one run directory. If any file cannot be written the
// directory is removed and the error returned, joined with any error from
// the removal.
func (s *Store) Save(cfg sim.Config, res *sim.Result) (runID string, err error) {
	now := time.Now()
	runID = fmt.Sprintf("%s_%s_%s", slug(cfg.Name), now.Format("20060102-150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := removeAll(runDir); rerr != nil {
				err = errors.Join(err, fmt.Errorf("remove partial run %s: %w", runDir, rerr))
			}
			runID = ""
		}
	}()

	names := make([]string, len(res.Final))
	for i, b := range res.Final {
		names[i] = b.Name
	}

	meta := RunMetadata{
		ID:                    runID,
		Name:                  cfg.Name,
		Timestamp:             now,
		Method:                cfg.Method.String(),
		Dt:                    cfg.Dt,
		Steps:                 cfg.Steps,
		Duration:              cfg.Duration(),
		SnapshotInterval:      cfg.SnapshotInterval,
		Snapshots:             len(res.Trajectory),
		Bodies:                names,
		TrackLinearMomentum:   cfg.TrackLinearMomentum,
		TrackAngularMomentum:  cfg.TrackAngularMomentum,
		LinearMomentumChange:  res.LinearMomentumChange,
		AngularMomentumChange: res.AngularMomentumChange,
		EnergyDrift:           res.EnergyDrift,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta, true); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeJSON(filepath.Join(runDir, trajectoryFile), res.Trajectory, false); err != nil {
		return "", fmt.Errorf("write trajectory: %w", err)
	}
	if err := writeFinal(filepath.Join(runDir, finalFile), res.Final); err != nil {
		return "", fmt.Errorf("write final state: %w", err)
	}

	return runID, nil
}

func writeJSON(path string, v any, indent bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeFinal(path string, bodies []body.Body) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(bodyHeader); err != nil {
		return err
	}
	for _, b := range bodies {
		if err := w.Write(bodyRecord(b)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	if err := s.readJSON(runID, metadataFile, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory returns the recorded snapshots in order.
func (s *Store) LoadTrajectory(runID string) ([]sim.Snapshot, error) {
	var traj []sim.Snapshot
	if err := s.readJSON(runID, trajectoryFile, &traj); err != nil {
		return nil, err
	}
	return traj, nil
}

// LoadFinal returns the state of every body when the run finished.
func (s *Store) LoadFinal(runID string) ([]body.Body, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, finalFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty final state", runID)
	}

	bodies := make([]body.Body, 0, len(records)-1)
	for i, rec := range records[1:] {
		b, err := parseBodyRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", finalFile, i+2, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func (s *Store) readJSON(runID, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s/%s: %w", runID, name, err)
	}
	return nil
}

func slug(name string) string {
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, name)
}
