package orrery

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigEnv is the environment variable pointing to the directory of orrery.toml.
	ConfigEnv  = "ORRERY_CONFIG"
	configName = "orrery"
)

// PhaseMode selects how the mean anomalies are set at startup.
type PhaseMode uint8

const (
	// PhaseZero starts every body at perihelion.
	PhaseZero PhaseMode = iota
	// PhaseRandom draws each mean anomaly uniformly in [0, 2π).
	PhaseRandom
	// PhaseEphemeris uses the mean planetary elements at the start date.
	PhaseEphemeris
)

func (m PhaseMode) String() string {
	switch m {
	case PhaseZero:
		return "zero"
	case PhaseRandom:
		return "random"
	case PhaseEphemeris:
		return "ephemeris"
	default:
		return fmt.Sprintf("PhaseMode(%d)", uint8(m))
	}
}

// PhaseModeFromString returns the phase mode from its name.
func PhaseModeFromString(s string) (PhaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return PhaseZero, nil
	case "random":
		return PhaseRandom, nil
	case "ephemeris":
		return PhaseEphemeris, nil
	default:
		return PhaseZero, fmt.Errorf("unknown phase mode '%s'", s)
	}
}

// WindowConfig configures the window backend.
type WindowConfig struct {
	Width, Height int
	Fullscreen    bool
	Title         string
}

// Config is the whole simulation configuration.
type Config struct {
	TimeScale   float64 // Slows the motion relative to the wall clock
	Phase       PhaseMode
	Seed        int64 // Random phase seed, 0 means derived from the current time
	Solver      KeplerSolver
	Camera      CameraConfig
	ShowPaths   bool
	PathSamples int
	ViewExtent  float64 // Half width of the orthographic view, in world units
	Window      WindowConfig
	TracePath   string // Empty disables the trace
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		TimeScale:   0.1,
		Phase:       PhaseRandom,
		Solver:      DefaultKeplerSolver,
		Camera:      DefaultCameraConfig(),
		ShowPaths:   true,
		PathSamples: DefaultPathSamples,
		ViewExtent:  10,
		Window:      WindowConfig{Width: 1200, Height: 800, Title: "Solar System Simulation"},
	}
}

// Validate returns an error if the configuration cannot drive a simulation.
func (c Config) Validate() error {
	switch {
	case !(c.TimeScale > 0):
		return errors.New("simulation.time_scale must be positive")
	case c.Solver.MaxIterations < 1:
		return errors.New("solver.max_iterations must be at least 1")
	case !(c.Solver.Tolerance > 0):
		return errors.New("solver.tolerance must be positive")
	case !(c.Camera.MinZoom > 0):
		return errors.New("camera.min_zoom must be positive")
	case c.PathSamples < 3:
		return errors.New("render.path_samples must be at least 3")
	case !(c.ViewExtent > 0):
		return errors.New("render.view_extent must be positive")
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.New("window size must be positive")
	}
	return nil
}

// LoadConfig reads orrery.toml from the provided directory, or from $ORRERY_CONFIG
// if dir is empty. A missing file is not an error: the defaults are returned.
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
	}
	def := DefaultConfig()
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
	}

	v.SetDefault("simulation.time_scale", def.TimeScale)
	v.SetDefault("simulation.phase", def.Phase.String())
	v.SetDefault("simulation.seed", def.Seed)
	v.SetDefault("solver.max_iterations", def.Solver.MaxIterations)
	v.SetDefault("solver.tolerance", def.Solver.Tolerance)
	v.SetDefault("camera.min_zoom", def.Camera.MinZoom)
	v.SetDefault("camera.zoom_rate", def.Camera.ZoomRate)
	v.SetDefault("camera.pan_step", def.Camera.PanStep)
	v.SetDefault("render.show_paths", def.ShowPaths)
	v.SetDefault("render.path_samples", def.PathSamples)
	v.SetDefault("render.view_extent", def.ViewExtent)
	v.SetDefault("window.width", def.Window.Width)
	v.SetDefault("window.height", def.Window.Height)
	v.SetDefault("window.fullscreen", def.Window.Fullscreen)
	v.SetDefault("window.title", def.Window.Title)
	v.SetDefault("trace.path", def.TracePath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading %s.toml: %w", configName, err)
		}
	}

	phase, err := PhaseModeFromString(v.GetString("simulation.phase"))
	if err != nil {
		return Config{}, fmt.Errorf("simulation.phase: %w", err)
	}
	conf := Config{
		TimeScale: v.GetFloat64("simulation.time_scale"),
		Phase:     phase,
		Seed:      v.GetInt64("simulation.seed"),
		Solver: KeplerSolver{
			MaxIterations: v.GetInt("solver.max_iterations"),
			Tolerance:     v.GetFloat64("solver.tolerance"),
		},
		Camera: CameraConfig{
			MinZoom:  v.GetFloat64("camera.min_zoom"),
			ZoomRate: v.GetFloat64("camera.zoom_rate"),
			PanStep:  v.GetFloat64("camera.pan_step"),
		},
		ShowPaths:   v.GetBool("render.show_paths"),
		PathSamples: v.GetInt("render.path_samples"),
		ViewExtent:  v.GetFloat64("render.view_extent"),
		Window: WindowConfig{
			Width:      v.GetInt("window.width"),
			Height:     v.GetInt("window.height"),
			Fullscreen: v.GetBool("window.fullscreen"),
			Title:      v.GetString("window.title"),
		},
		TracePath: v.GetString("trace.path"),
	}
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s.toml: %w", configName, err)
	}
	return conf, nil
}
