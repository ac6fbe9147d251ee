// Package config loads the optional blurdemo.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/viewblur"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "blurdemo.yaml"

// Config represents the optional blurdemo.yaml configuration.
type Config struct {
	Blur   BlurConfig   `yaml:"blur"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// BlurConfig controls the blur requests the demo issues.
type BlurConfig struct {
	// Radius is the blur radius in logical units. An explicit 0 selects the
	// smallest window; unset uses viewblur.DefaultRadius.
	Radius *float64 `yaml:"radius,omitempty"`
	// Duration is the cross-fade length in seconds. Zero swaps immediately.
	Duration float64 `yaml:"duration,omitempty"`
	// Rows lists zero-based row indices to blur.
	Rows []int `yaml:"rows,omitempty"`
	// All blurs the whole list after the rows.
	All bool `yaml:"all,omitempty"`
	// Workers is the number of convolution goroutines; 0 uses GOMAXPROCS.
	Workers *int `yaml:"workers,omitempty"`
}

// RenderConfig describes the rendered list.
type RenderConfig struct {
	Scale     float64  `yaml:"scale,omitempty"`
	Width     float64  `yaml:"width,omitempty"`
	RowHeight float64  `yaml:"row_height,omitempty"`
	Names     []string `yaml:"names,omitempty"`
	Output    string   `yaml:"output,omitempty"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	workers := 1
	radius := viewblur.DefaultRadius
	return &Config{
		Blur: BlurConfig{
			Radius:  &radius,
			Rows:    []int{1, 3},
			Workers: &workers,
		},
		Render: RenderConfig{
			Scale:     2,
			Width:     320,
			RowHeight: 120,
			Names: []string{
				"ada lovelace", "grace hopper", "alan turing",
				"edsger dijkstra", "barbara liskov", "ken thompson",
			},
			Output: "blurdemo.png",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the configuration at path and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads blurdemo.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Blur.Radius == nil {
		c.Blur.Radius = def.Blur.Radius
	}
	if c.Blur.Workers == nil {
		c.Blur.Workers = def.Blur.Workers
	}
	if c.Render.Scale == 0 {
		c.Render.Scale = def.Render.Scale
	}
	if c.Render.Width == 0 {
		c.Render.Width = def.Render.Width
	}
	if c.Render.RowHeight == 0 {
		c.Render.RowHeight = def.Render.RowHeight
	}
	if len(c.Render.Names) == 0 {
		c.Render.Names = def.Render.Names
	}
	if c.Render.Output == "" {
		c.Render.Output = def.Render.Output
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.Blur.Radius == nil:
		return errors.New("blur.radius is not set")
	case *c.Blur.Radius < 0:
		return fmt.Errorf("blur.radius must not be negative, got %v", *c.Blur.Radius)
	case c.Blur.Duration < 0:
		return fmt.Errorf("blur.duration must not be negative, got %v", c.Blur.Duration)
	case c.Render.Scale <= 0:
		return fmt.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	case c.Render.Width <= 0 || c.Render.RowHeight <= 0:
		return errors.New("render.width and render.row_height must be positive")
	}
	for _, r := range c.Blur.Rows {
		if r < 0 || r >= len(c.Render.Names) {
			return fmt.Errorf("blur.rows: row %d out of range [0, %d)", r, len(c.Render.Names))
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// BlurRadius returns the configured radius, or viewblur.DefaultRadius when
// none is set.
func (c *Config) BlurRadius() float64 {
	if c.Blur.Radius == nil {
		return viewblur.DefaultRadius
	}
	return *c.Blur.Radius
}

// TransitionDuration returns Blur.Duration as a time.Duration.
func (c *Config) TransitionDuration() time.Duration {
	return time.Duration(c.Blur.Duration * float64(time.Second))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
