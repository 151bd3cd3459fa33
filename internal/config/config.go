// Package config holds the flight-recorder configuration: the flight
// database location and the recorder heartbeat interval. Values come
// from defaults, then an optional YAML config file, then flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for both subcommands.
type Config struct {
	// Database is the path to the SQLite flight database.
	Database string

	// Heartbeat is the interval between recorder heartbeats.
	Heartbeat time.Duration
}

// fileConfig mirrors the YAML config file layout.
type fileConfig struct {
	Database  string `yaml:"database"`
	Heartbeat string `yaml:"heartbeat"`
}

// DefaultConfig returns default configuration: the flight database
// under the user's home directory and a 30s heartbeat.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Database:  filepath.Join(home, ".flight-recorder", "flights.db"),
		Heartbeat: 30 * time.Second,
	}
}

// LoadFile applies settings from a YAML config file over c. The file
// is validated against the embedded schema before any field is read.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if doc == nil {
		// Empty file: keep current values.
		return nil
	}

	if err := validateDocument(path, doc); err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Database != "" {
		c.Database = fc.Database
	}
	if fc.Heartbeat != "" {
		d, err := ParseDuration(fc.Heartbeat)
		if err != nil {
			return fmt.Errorf("config %s: heartbeat: %w", path, err)
		}
		c.Heartbeat = d
	}

	return nil
}

// Validate checks if configuration is valid.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Heartbeat < time.Second {
		return fmt.Errorf("heartbeat must be at least %s, got %v", formatDuration(time.Second), c.Heartbeat)
	}

	return nil
}
