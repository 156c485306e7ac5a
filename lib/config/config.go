// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "SELECTKIT_CONFIG"

// ErrNoConfig is returned by [Load] when EnvironmentVariable is unset.
// Callers that can run on defaults check for it with errors.Is.
var ErrNoConfig = errors.New(EnvironmentVariable + " environment variable not set")

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for selectkit.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Select configures the select engine.
	Select SelectConfig `yaml:"select"`

	// Theme overrides terminal colors by name (text, accent, border,
	// ...). Values are ANSI color numbers or hex strings.
	Theme map[string]string `yaml:"theme,omitempty"`

	// State configures persistence of the last chosen value.
	State StateConfig `yaml:"state"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Select *SelectConfig     `yaml:"select,omitempty"`
	Theme  map[string]string `yaml:"theme,omitempty"`
	State  *StateConfig      `yaml:"state,omitempty"`
}

// SelectConfig configures placement and timing of the select.
type SelectConfig struct {
	// Margin is the gap kept between the popup and the window edges,
	// in terminal cells.
	// Default: 1
	Margin float64 `yaml:"margin"`

	// Direction is "ltr" or "rtl".
	// Default: ltr
	Direction string `yaml:"direction"`

	// Position is "item-aligned" or "popper".
	// Default: item-aligned
	Position string `yaml:"position"`

	// Align places a popper popup against the trigger: "start",
	// "center" or "end". Ignored for item-aligned.
	// Default: start
	Align string `yaml:"align"`

	// SideOffset is the gap between trigger and popper popup, in rows.
	SideOffset float64 `yaml:"side_offset"`

	// Placeholder is shown on the trigger while nothing is selected.
	Placeholder string `yaml:"placeholder"`

	// TypeaheadReset is how long the typeahead buffer survives
	// without a keystroke.
	// Default: 1s
	TypeaheadReset time.Duration `yaml:"typeahead_reset"`

	// AutoScrollInterval paces scrolling while the pointer rests on
	// an overflow indicator.
	// Default: 50ms
	AutoScrollInterval time.Duration `yaml:"auto_scroll_interval"`
}

// StateConfig configures the state file.
type StateConfig struct {
	// Path is where the last chosen value is stored. ${HOME} and
	// ${VAR:-default} are expanded. Empty disables persistence.
	Path string `yaml:"path"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
func Default() *Config {
	return &Config{
		Environment: Development,
		Select: SelectConfig{
			Margin:             1,
			Direction:          "ltr",
			Position:           "item-aligned",
			Align:              "start",
			TypeaheadReset:     time.Second,
			AutoScrollInterval: 50 * time.Millisecond,
		},
	}
}

// Load loads configuration from the SELECTKIT_CONFIG environment
// variable. There is no discovery: when the variable is unset Load
// returns an error wrapping [ErrNoConfig].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%w; set it to the path of your selectkit.yaml config file, or use --config flag", ErrNoConfig)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The only expansion performed is ${HOME} and similar variables in
// the state path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Select != nil {
		c.Select.merge(*overrides.Select)
	}

	if len(overrides.Theme) > 0 {
		theme := make(map[string]string, len(c.Theme)+len(overrides.Theme))
		for name, color := range c.Theme {
			theme[name] = color
		}
		for name, color := range overrides.Theme {
			theme[name] = color
		}
		c.Theme = theme
	}

	if overrides.State != nil && overrides.State.Path != "" {
		c.State.Path = overrides.State.Path
	}
}

// merge copies the non-zero fields of overrides.
func (s *SelectConfig) merge(overrides SelectConfig) {
	if overrides.Margin != 0 {
		s.Margin = overrides.Margin
	}
	if overrides.Direction != "" {
		s.Direction = overrides.Direction
	}
	if overrides.Position != "" {
		s.Position = overrides.Position
	}
	if overrides.Align != "" {
		s.Align = overrides.Align
	}
	if overrides.SideOffset != 0 {
		s.SideOffset = overrides.SideOffset
	}
	if overrides.Placeholder != "" {
		s.Placeholder = overrides.Placeholder
	}
	if overrides.TypeaheadReset != 0 {
		s.TypeaheadReset = overrides.TypeaheadReset
	}
	if overrides.AutoScrollInterval != 0 {
		s.AutoScrollInterval = overrides.AutoScrollInterval
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.State.Path = expandVars(c.State.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
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

		// Check provided vars first, then environment.
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
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Select.Margin < 0 {
		errs = append(errs, fmt.Errorf("select.margin must not be negative, got %v", c.Select.Margin))
	}
	if c.Select.SideOffset < 0 {
		errs = append(errs, fmt.Errorf("select.side_offset must not be negative, got %v", c.Select.SideOffset))
	}

	directions := []string{"ltr", "rtl"}
	if !contains(directions, c.Select.Direction) {
		errs = append(errs, fmt.Errorf("select.direction must be one of: %v", directions))
	}
	positions := []string{"item-aligned", "popper"}
	if !contains(positions, c.Select.Position) {
		errs = append(errs, fmt.Errorf("select.position must be one of: %v", positions))
	}
	alignments := []string{"start", "center", "end"}
	if !contains(alignments, c.Select.Align) {
		errs = append(errs, fmt.Errorf("select.align must be one of: %v", alignments))
	}

	if c.Select.TypeaheadReset <= 0 {
		errs = append(errs, fmt.Errorf("select.typeahead_reset must be positive, got %s", c.Select.TypeaheadReset))
	}
	if c.Select.AutoScrollInterval <= 0 {
		errs = append(errs, fmt.Errorf("select.auto_scroll_interval must be positive, got %s", c.Select.AutoScrollInterval))
	}

	if c.State.Path != "" && !filepath.IsAbs(c.State.Path) {
		errs = append(errs, fmt.Errorf("state.path must be absolute, got %q", c.State.Path))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
