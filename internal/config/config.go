// Package config loads raypick settings. Values are fixed once loaded.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"raypick/internal/perf"
	"raypick/internal/raycache"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Stats      StatsConfig     `yaml:"stats"`
	Raycast    RaycastConfig   `yaml:"raycast"`
	Log        LogConfig       `yaml:"log"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	DBPath     string          `yaml:"db_path"`
	Scene      string          `yaml:"scene"`
}

// ThresholdConfig bounds camera drift for cache reuse. Direction is in radians.
type ThresholdConfig struct {
	Position  float64 `yaml:"position"`
	Direction float64 `yaml:"direction"`
}

type StatsConfig struct {
	Capacity int `yaml:"capacity"`
}

type RaycastConfig struct {
	MaxDistance float32 `yaml:"max_distance"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			Position:  raycache.DefaultPositionThreshold,
			Direction: raycache.DefaultDirectionThreshold,
		},
		Stats:   StatsConfig{Capacity: perf.DefaultCapacity},
		Raycast: RaycastConfig{MaxDistance: 100},
		Log:     LogConfig{Level: "info"},
		DBPath:  "raypick.db",
	}
}

// Load reads a YAML config file and expands environment variables.
// Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns defaults when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	// written as !(x > 0) so NaN is rejected too
	if !(c.Thresholds.Position > 0) {
		err = multierr.Append(err, fmt.Errorf("thresholds.position must be positive, got %v", c.Thresholds.Position))
	}
	if !(c.Thresholds.Direction > 0) || math.IsInf(c.Thresholds.Direction, 1) {
		err = multierr.Append(err, fmt.Errorf("thresholds.direction must be a positive finite angle, got %v", c.Thresholds.Direction))
	}
	if c.Stats.Capacity <= 0 {
		err = multierr.Append(err, fmt.Errorf("stats.capacity must be positive, got %d", c.Stats.Capacity))
	}
	if !(c.Raycast.MaxDistance > 0) {
		err = multierr.Append(err, errors.New("raycast.max_distance must be positive"))
	}
	return err
}

func (c *Config) CacheThresholds() raycache.Thresholds {
	return raycache.Thresholds{
		Position:  c.Thresholds.Position,
		Direction: c.Thresholds.Direction,
	}
}
