// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Emitter   EmitterConfig   `yaml:"emitter"`
	Grid      GridConfig      `yaml:"grid"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle system tuning.
type ParticlesConfig struct {
	MaxParticles int     `yaml:"max_particles"`
	SpawnRate    float64 `yaml:"spawn_rate"`
	Lifetime     float64 `yaml:"lifetime"`
	Size         float64 `yaml:"size"`
	GravityX     float64 `yaml:"gravity_x"`
	GravityY     float64 `yaml:"gravity_y"`
	// Accepted for compatibility with the original tuning surface; the
	// integration step applies a fixed drag constant instead.
	DragCoefficient float64 `yaml:"drag_coefficient"`
	// Workers > 1 partitions the integration phase; 0 or 1 keeps the
	// single-threaded tick.
	Workers int `yaml:"workers"`
}

// EmitterConfig holds defaults for emitters created at runtime.
type EmitterConfig struct {
	Rate            float64 `yaml:"rate"`
	Spread          float64 `yaml:"spread"` // half-angle in radians
	InitialVelocity float64 `yaml:"initial_velocity"`
	Lifetime        float64 `yaml:"lifetime"`
	Size            float64 `yaml:"size"`
}

// GridConfig holds spatial grid parameters.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// BridgeConfig holds the websocket bridge settings.
type BridgeConfig struct {
	Listen    string `yaml:"listen"`     // address, empty disables the bridge
	MinPoints int    `yaml:"min_points"` // outline points required before building
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	CellSize  float32 // Grid.CellSize as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CellSize = float32(c.Grid.CellSize)

	if c.Bridge.MinPoints == 0 {
		c.Bridge.MinPoints = 4
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
