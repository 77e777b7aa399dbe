// Package config provides configuration loading and management for the
// marchcubes command-line front end. It handles loading configuration from
// YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Grid parameters
	Grid struct {
		// Nx, Ny, Nz are the sample grid's resolution along each axis.
		Nx int `yaml:"nx"`
		Ny int `yaml:"ny"`
		Nz int `yaml:"nz"`

		// OriginX/Y/Z place the grid's (0,0,0) sample in world space.
		OriginX float64 `yaml:"originX"`
		OriginY float64 `yaml:"originY"`
		OriginZ float64 `yaml:"originZ"`

		// CellSize is the uniform physical spacing between samples.
		CellSize float64 `yaml:"cellSize"`
	} `yaml:"grid"`

	// Processing parameters
	Processing struct {
		// NumCores is saved and loaded with the config; the formula, csg and
		// grid producers run single-threaded and do not read it.
		NumCores int `yaml:"numCores"`

		// IsoValue is the surface level passed to the extractor.
		IsoValue float64 `yaml:"isoValue"`

		// ClassicMethod selects the classical (non-topological) method when
		// true; the default, topologically consistent method otherwise.
		ClassicMethod bool `yaml:"classicMethod"`
	} `yaml:"processing"`

	// Producer selects and configures the sample source.
	Producer struct {
		// Kind is one of "formula", "csg", or "grid".
		Kind string `yaml:"kind"`

		// Formula is the expression text used when Kind is "formula".
		Formula string `yaml:"formula"`

		// GridFile is the isogrid path used when Kind is "grid".
		GridFile string `yaml:"gridFile"`
	} `yaml:"producer"`

	// Output parameters
	Output struct {
		// Path is the destination mesh file; its extension (.stl or .ply)
		// selects the writer.
		Path string `yaml:"path"`

		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz = 32, 32, 32
	cfg.Grid.CellSize = 1.0

	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.IsoValue = 0
	cfg.Processing.ClassicMethod = false

	cfg.Producer.Kind = "formula"
	cfg.Producer.Formula = "sqrt(x*x + y*y + z*z) - 10"

	cfg.Output.Path = "mesh.stl"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
