// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/sheetshark/sheetshark/lib/timeline"
)

// Config is the master configuration for sheetshark.
type Config struct {
	// DataDir is where the database and exports live.
	// Default: ${HOME}/.local/share/sheetshark
	DataDir string `yaml:"data_dir"`

	// DayStart is the wall-clock time ("HH:MM") a fresh day's
	// placeholder block starts at. Default: 09:00.
	DayStart string `yaml:"day_start"`

	// DefaultProjectKey pre-fills the project column of fresh blocks.
	// Empty means no pre-fill.
	DefaultProjectKey string `yaml:"default_project"`

	// Projects is the project catalog, keyed by the short key typed
	// into the project column. The key "x" is reserved for breaks.
	Projects map[string]Project `yaml:"projects"`
}

// Project describes one entry of the project catalog.
type Project struct {
	// Name is the human-readable project name, shown in summaries.
	Name string `yaml:"name"`

	// TicketURL is a template for opening tickets in a browser; the
	// literal "{key}" is replaced by the ticket key.
	TicketURL string `yaml:"ticket_url,omitempty"`
}

// Default returns the default configuration. sheetshark runs fine
// with no config file at all, so unlike server software these
// defaults are a complete working setup, not just zero-value filler.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DataDir:  filepath.Join(homeDir, ".local", "share", "sheetshark"),
		DayStart: "09:00",
		Projects: map[string]Project{},
	}
}

// Load loads configuration from the SHEETSHARK_CONFIG environment
// variable, falling back to defaults when it is unset. A set but
// unloadable path is an error; silently ignoring it would hide typos.
func Load() (*Config, error) {
	configPath := os.Getenv("SHEETSHARK_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, cfg.Validate()
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file is
// YAML or JSONC, chosen by extension (.json and .jsonc get the JSONC
// treatment). Environment variables do not override config values;
// the only expansion performed is ${HOME} style path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSONC strips to JSON, and YAML parses JSON as a subset.
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DayStartTime returns the parsed DayStart. Call Validate first;
// after a successful Validate this cannot fail.
func (c *Config) DayStartTime() timeline.TimeOfDay {
	t, err := timeline.ParseTimeOfDay(c.DayStart)
	if err != nil {
		t = timeline.TimeOfDay(9 * 60)
	}
	return t
}

// DatabasePath returns the SQLite database location under DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "sheetshark.sqlite")
}

// ExportDir returns the directory export files are written to.
func (c *Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// ProjectName returns the catalog name for a project key, or the key
// itself when the catalog has no entry for it.
func (c *Config) ProjectName(key string) string {
	if p, ok := c.Projects[key]; ok && p.Name != "" {
		return p.Name
	}
	return key
}

// ProjectKeys returns the catalog's keys in sorted order.
func (c *Config) ProjectKeys() []string {
	keys := make([]string, 0, len(c.Projects))
	for k := range c.Projects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.DataDir = expandVars(c.DataDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := timeline.ParseTimeOfDay(c.DayStart); err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	if _, ok := c.Projects[timeline.BreakProjectKey]; ok {
		return fmt.Errorf("project key %q is reserved for breaks", timeline.BreakProjectKey)
	}
	if c.DefaultProjectKey != "" {
		if _, ok := c.Projects[c.DefaultProjectKey]; !ok {
			return fmt.Errorf("default_project %q is not in the project catalog", c.DefaultProjectKey)
		}
	}
	return nil
}
