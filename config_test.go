package orrery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orrery.toml"), []byte(contents), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
[simulation]
time_scale = 0.25
phase = "ephemeris"
seed = 1234

[solver]
max_iterations = 20
tolerance = 1e-9

[camera]
min_zoom = 0.05

[render]
show_paths = false
path_samples = 360

[window]
width = 640
height = 480
title = "orrery"

[trace]
path = "trace.csv"
`)
	conf, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.25, conf.TimeScale)
	assert.Equal(t, PhaseEphemeris, conf.Phase)
	assert.Equal(t, int64(1234), conf.Seed)
	assert.Equal(t, KeplerSolver{MaxIterations: 20, Tolerance: 1e-9}, conf.Solver)
	assert.Equal(t, 0.05, conf.Camera.MinZoom)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultCameraConfig().ZoomRate, conf.Camera.ZoomRate)
	assert.Equal(t, DefaultCameraConfig().PanStep, conf.Camera.PanStep)
	assert.False(t, conf.ShowPaths)
	assert.Equal(t, 360, conf.PathSamples)
	assert.Equal(t, 10.0, conf.ViewExtent)
	assert.Equal(t, WindowConfig{Width: 640, Height: 480, Title: "orrery"}, conf.Window)
	assert.Equal(t, "trace.csv", conf.TracePath)
}

func TestLoadConfigEnv(t *testing.T) {
	dir := writeConfig(t, "[simulation]\ntime_scale = 2.0\n")
	t.Setenv(ConfigEnv, dir)
	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, conf.TimeScale)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	conf, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, contents := range map[string]string{
		"time scale": "[simulation]\ntime_scale = -1.0\n",
		"phase":      "[simulation]\nphase = \"retrograde\"\n",
		"iterations": "[solver]\nmax_iterations = 0\n",
		"tolerance":  "[solver]\ntolerance = 0.0\n",
		"zoom":       "[camera]\nmin_zoom = 0.0\n",
		"samples":    "[render]\npath_samples = 2\n",
		"extent":     "[render]\nview_extent = 0.0\n",
		"window":     "[window]\nwidth = 0\n",
		"syntax":     "[simulation\ntime_scale = 1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, contents))
			assert.Error(t, err)
		})
	}
}

func TestPhaseMode(t *testing.T) {
	for _, m := range []PhaseMode{PhaseZero, PhaseRandom, PhaseEphemeris} {
		got, err := PhaseModeFromString(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := PhaseModeFromString(" Random ")
	require.NoError(t, err)
	assert.Equal(t, PhaseRandom, got)
	_, err = PhaseModeFromString("spin")
	assert.Error(t, err)
}
