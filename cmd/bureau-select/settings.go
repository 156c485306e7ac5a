// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io/fs"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/clierr"
	"github.com/bureau-foundation/selectkit/lib/config"
	"github.com/bureau-foundation/selectkit/lib/dropdown"
)

// loadConfig loads the file named by --config, else the one named by
// SELECTKIT_CONFIG, else the defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Default(), nil
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierr.NotFound("loading config: %w", err).
			WithHint("Check --config or " + config.EnvironmentVariable + ".")
	}
	if err != nil {
		return nil, clierr.Validation("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets command-line flags override the config file, then
// validates the result.
func applyFlags(cfg *config.Config, parsed flags) error {
	if parsed.placeholder != "" {
		cfg.Select.Placeholder = parsed.placeholder
	}
	if parsed.position != "" {
		cfg.Select.Position = parsed.position
	}
	if parsed.rtl {
		cfg.Select.Direction = "rtl"
	}
	if err := cfg.Validate(); err != nil {
		return clierr.Validation("invalid configuration: %w", err)
	}
	return nil
}

// dropdownOptions translates the select section of a validated config
// into controller options.
func dropdownOptions(cfg *config.Config) (dropdown.Options, error) {
	mode, ok := anchor.ParseMode(cfg.Select.Position)
	if !ok {
		return dropdown.Options{}, clierr.Validation("unknown position %q", cfg.Select.Position).
			WithHint("Use item-aligned or popper.")
	}

	direction := anchor.LeftToRight
	if cfg.Select.Direction == "rtl" {
		direction = anchor.RightToLeft
	}

	align := anchor.AlignStart
	switch cfg.Select.Align {
	case "center":
		align = anchor.AlignCenter
	case "end":
		align = anchor.AlignEnd
	}

	return dropdown.Options{
		Placeholder: cfg.Select.Placeholder,
		Direction:   direction,
		Mode:        mode,
		Popper: anchor.PopperOptions{
			Side:       anchor.SideBottom,
			SideOffset: cfg.Select.SideOffset,
			Align:      align,
		},
		Margin:             cfg.Select.Margin,
		TypeaheadDelay:     cfg.Select.TypeaheadReset,
		AutoScrollInterval: cfg.Select.AutoScrollInterval,
	}, nil
}
