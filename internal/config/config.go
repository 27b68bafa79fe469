package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"voxel-client/internal/world"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration file.
type Config struct {
	Seed     int64         `yaml:"seed"`
	Lattice  LatticeConfig `yaml:"lattice"`
	Noise    NoiseConfig   `yaml:"noise"`
	Workers  int           `yaml:"workers"`
	Window   WindowConfig  `yaml:"window"`
	Texture  string        `yaml:"texture"`
	Metrics  MetricsConfig `yaml:"metrics"`
	LogLevel string        `yaml:"log_level"`
}

type Vec3 struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type LatticeConfig struct {
	// Origin defaults to a lattice centred on x=0,z=0 when omitted.
	Origin *Vec3 `yaml:"origin,omitempty"`
	Extent Vec3  `yaml:"extent"`
}

type NoiseConfig struct {
	Kind        string  `yaml:"kind"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Scale       float64 `yaml:"scale"`
	BaseHeight  int     `yaml:"base_height"`
	Amplitude   float64 `yaml:"amplitude"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	// FPSLimit caps the frame rate when vsync is off; 0 means uncapped.
	FPSLimit int `yaml:"fps_limit"`
}

type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint; empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns a 10×4×10 lattice of rolling Perlin terrain.
func Default() Config {
	n := world.DefaultNoiseSettings()
	return Config{
		Seed:    1,
		Lattice: LatticeConfig{Extent: Vec3{X: 10, Y: 4, Z: 10}},
		Noise: NoiseConfig{
			Kind:        n.Kind,
			Octaves:     n.Octaves,
			Persistence: n.Persistence,
			Lacunarity:  n.Lacunarity,
			Scale:       n.Scale,
			BaseHeight:  n.BaseHeight,
			Amplitude:   n.Amplitude,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "voxel-client",
			VSync:  true,
		},
		LogLevel: "info",
	}
}

// Load reads a yaml file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section without building anything.
func (c Config) Validate() error {
	if err := c.worldOptions().Validate(); err != nil {
		return err
	}
	if err := c.NoiseSettings().Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("window: invalid fps_limit %d", c.Window.FPSLimit)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Extent returns the lattice size.
func (c Config) Extent() world.Extent {
	e := c.Lattice.Extent
	return world.Extent{X: e.X, Y: e.Y, Z: e.Z}
}

// Origin returns the configured origin or the centred default.
func (c Config) Origin() world.LatticePos {
	if o := c.Lattice.Origin; o != nil {
		return world.LatticePos{X: o.X, Y: o.Y, Z: o.Z}
	}
	return world.CenteredOrigin(c.Extent())
}

func (c Config) worldOptions() world.Options {
	return world.Options{Origin: c.Origin(), Extent: c.Extent(), Workers: c.Workers}
}

// WorldOptions builds world options with the given logger and observer.
func (c Config) WorldOptions(log *slog.Logger, obs world.Observer) world.Options {
	o := c.worldOptions()
	o.Logger = log
	o.Observer = obs
	return o
}

// NoiseSettings maps the noise section and seed onto world settings.
func (c Config) NoiseSettings() world.NoiseSettings {
	return world.NoiseSettings{
		Kind:        c.Noise.Kind,
		Seed:        c.Seed,
		Octaves:     c.Noise.Octaves,
		Persistence: c.Noise.Persistence,
		Lacunarity:  c.Noise.Lacunarity,
		Scale:       c.Noise.Scale,
		BaseHeight:  c.Noise.BaseHeight,
		Amplitude:   c.Noise.Amplitude,
	}
}

// SlogLevel parses log_level ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
