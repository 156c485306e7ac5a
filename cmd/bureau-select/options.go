// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/bureau-foundation/selectkit/lib/clierr"
	"github.com/bureau-foundation/selectkit/lib/optionfile"
	"github.com/bureau-foundation/selectkit/lib/statefile"
	"github.com/bureau-foundation/selectkit/lib/tui"
)

// loadOptions reads the option list from --file, the positional
// arguments, or stdin, in that order of preference. The returned name
// says where the list came from, for log records.
func loadOptions(file string, args []string, stdin io.Reader, stdinIsTerminal bool) ([]optionfile.Option, string, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, "", clierr.Validation("options given both in --file and as arguments")
	case file != "":
		options, err := optionfile.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", clierr.NotFound("%w", err)
		}
		if err != nil {
			return nil, "", clierr.Validation("%w", err)
		}
		return options, filepath.Base(file), nil
	case len(args) > 0:
		return optionfile.FromArgs(args), "arguments", nil
	case !stdinIsTerminal:
		options, err := optionfile.ReadLines(stdin)
		if err != nil {
			return nil, "", clierr.Internal("%w", err)
		}
		return options, "stdin", nil
	default:
		return nil, "", clierr.Validation("no options to choose from").
			WithHint("Pass options as arguments, with --file, or one per line on stdin.")
	}
}

// validateOptions rejects an empty list and options without values.
// Duplicate values come back as warnings for the status line.
func validateOptions(options []optionfile.Option) ([]string, error) {
	if len(options) == 0 {
		return nil, clierr.Validation("no options to choose from").
			WithHint("The option list is empty.")
	}
	warnings, err := optionfile.Validate(options)
	if err != nil {
		return nil, clierr.Validation("%w", err)
	}
	return warnings, nil
}

// initialValue picks the value the select starts on: --value, then
// the best match for --query, then the remembered value when it was
// chosen from a list with the same fingerprint and is still enabled.
// Empty means no selection.
func initialValue(options []optionfile.Option, value, query string, saved statefile.State) string {
	if value != "" {
		return value
	}
	if match, ok := optionfile.BestMatch(options, query); ok {
		return match
	}
	if saved.Matches(optionfile.Fingerprint(options)) && offers(options, saved.Value) {
		return saved.Value
	}
	return ""
}

func offers(options []optionfile.Option, value string) bool {
	return slices.ContainsFunc(options, func(option optionfile.Option) bool {
		return option.Value == value && !option.Disabled
	})
}

func pickerOptions(options []optionfile.Option) []tui.Option {
	converted := make([]tui.Option, 0, len(options))
	for _, option := range options {
		converted = append(converted, tui.Option{
			Value:     option.Value,
			Label:     option.Label,
			TextValue: option.TextValue,
			Disabled:  option.Disabled,
		})
	}
	return converted
}
