// Package config holds vizmo's runtime configuration: YAML file, defaults,
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all vizmo settings.
type Config struct {
	// OutputDir is the base directory run directories are created under.
	OutputDir string `yaml:"output_dir"`

	// DatabasePath locates the run registry.
	DatabasePath string `yaml:"database_path"`

	Export   ExportConfig   `yaml:"export"`
	Organize OrganizeConfig `yaml:"organize"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ExportConfig configures table export.
type ExportConfig struct {
	// MetadataName appends frame/point counts and a timestamp to CSV names.
	MetadataName bool `yaml:"metadata_name"`
}

// OrganizeConfig configures scan organizing.
type OrganizeConfig struct {
	// Copy leaves source scans in place instead of moving them.
	Copy bool `yaml:"copy"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    "./output",
		DatabasePath: "./output/vizmo.db",
		Export: ExportConfig{
			MetadataName: true,
		},
		Organize: OrganizeConfig{
			Copy: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIZMO_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("VIZMO_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("VIZMO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks field values that would only fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
