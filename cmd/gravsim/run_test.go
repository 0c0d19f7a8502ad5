package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "run"}
	addSimFlags(cmd)
	cmd.Flags().StringVar(&method, "method", "verlet", "")
	cmd.Flags().StringVar(&runName, "name", "", "")
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, config.GetPreset("geostationary"), cfg)
}

func TestLoadConfigFlagsOverridePreset(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--preset", "earth-moon",
		"--method", "euler-cromer",
		"--steps", "42",
		"--track-angular=false",
		"--name", "quick",
	}))

	cfg, err := loadConfig(cmd.Flags())
	require.NoError(t, err)

	want := config.GetPreset("earth-moon")
	assert.Equal(t, integrators.EulerCromer, cfg.Method)
	assert.Equal(t, 42, cfg.Steps)
	assert.Equal(t, "quick", cfg.Name)
	assert.False(t, cfg.TrackAngularMomentum)
	// untouched flags keep the preset value, not the flag default
	assert.Equal(t, want.Dt, cfg.Dt)
	assert.Equal(t, want.Bodies, cfg.Bodies)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: pair
method: euler
dt: 2
steps: 10
bodies:
  - name: a
    mass: 1.0e20
    position: [0, 0, 0]
    velocity: [0, 0, 0]
  - name: b
    mass: 1.0e20
    position: [1.0e6, 0, 0]
    velocity: [0, 1, 0]
`), 0644))

	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--dt", "0.5"}))

	cfg, err := loadConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "pair", cfg.Name)
	assert.Equal(t, integrators.Euler, cfg.Method)
	assert.Equal(t, 0.5, cfg.Dt)
	assert.Equal(t, 10, cfg.Steps)
	assert.Len(t, cfg.Bodies, 2)
}

func TestLoadConfigErrors(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "nope"}))
	_, err := loadConfig(cmd.Flags())
	assert.ErrorContains(t, err, "unknown preset")

	cmd = newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--method", "rk4"}))
	_, err = loadConfig(cmd.Flags())
	assert.Error(t, err)
}

func TestWithAccelerations(t *testing.T) {
	cfg := config.DefaultConfig()
	bodies, err := withAccelerations(cfg.BodyList())
	require.NoError(t, err)

	// GM/r² at geostationary radius
	assert.InDelta(t, -0.22202, bodies[1].Acceleration.X, 1e-4)
	assert.Greater(t, bodies[0].Acceleration.X, 0.0)
}
