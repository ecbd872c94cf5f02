// Package config loads gridNERD configuration from YAML with sane defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all gridNERD configuration.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Agent   AgentConfig   `yaml:"agent"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig selects or generates the grid environment.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Benchmark selects the fixed Russell & Norvig 4x4 layout. When false, a
	// world is generated from Seed and PitDensity.
	Benchmark  bool    `yaml:"benchmark"`
	Seed       int64   `yaml:"seed"`
	PitDensity float64 `yaml:"pit_density"`
}

// AgentConfig bounds the episode.
type AgentConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// KernelConfig configures the diagnostic Mangle kernel.
type KernelConfig struct {
	// RulesDir is watched for user *.gl rule files during interactive runs.
	RulesDir string `yaml:"rules_dir"`
}

// StoreConfig configures episode persistence.
type StoreConfig struct {
	Path   string `yaml:"path"`
	Record bool   `yaml:"record"`
}

// LoggingConfig controls the categorized debug logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Dir       string `yaml:"dir"`
	Level     string `yaml:"level"`
}

// Default returns the stock configuration: benchmark 4x4 world, recording
// off, logging off.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:      4,
			Height:     4,
			Benchmark:  true,
			PitDensity: 0.2,
		},
		Agent: AgentConfig{
			MaxSteps: 200,
		},
		Kernel: KernelConfig{
			RulesDir: ".gridnerd/rules",
		},
		Store: StoreConfig{
			Path: ".gridnerd/episodes.db",
		},
		Logging: LoggingConfig{
			Dir:   ".gridnerd/logs",
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the simulator cannot honor.
func (c Config) Validate() error {
	if c.World.Width < 2 || c.World.Height < 2 {
		return fmt.Errorf("world must be at least 2x2, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.PitDensity < 0 || c.World.PitDensity >= 1 {
		return fmt.Errorf("pit_density must be in [0,1), got %v", c.World.PitDensity)
	}
	if c.Agent.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.Agent.MaxSteps)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
