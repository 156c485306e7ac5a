// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package optionfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrEmptyValue is returned by Validate for an option without a value.
var ErrEmptyValue = errors.New("option value is empty")

// Option is one entry of an option list.
type Option struct {
	Value string `json:"value" yaml:"value"`

	// Label is the display text. Defaults to Value.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// TextValue is what typeahead matches against. Defaults to Label.
	TextValue string `json:"text_value,omitempty" yaml:"text_value,omitempty"`

	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// optionFields has Option's fields without its decoding methods.
type optionFields Option

// UnmarshalJSON accepts a bare string as shorthand for {"value": s}.
func (option *Option) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*option = Option{Value: value}
		return nil
	}
	var fields optionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*option = Option(fields)
	return nil
}

// UnmarshalYAML accepts a scalar as shorthand for {value: s}.
func (option *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*option = Option{Value: node.Value}
		return nil
	}
	var fields optionFields
	if err := node.Decode(&fields); err != nil {
		return err
	}
	*option = Option(fields)
	return nil
}

// Format is an option list encoding.
type Format int

const (
	// Lines is one option per line.
	Lines Format = iota
	// JSON covers both JSON and JSONC.
	JSON
	// YAML is a YAML document.
	YAML
)

// String returns the format name.
func (format Format) String() string {
	switch format {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "lines"
	}
}

// FormatForPath picks the format from the file extension. Unknown
// extensions are read as plain lines.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Lines
	}
}

// document is the mapping form of a structured option file.
type document struct {
	Options []Option `json:"options" yaml:"options"`
}

// Parse decodes data in the given format and fills in default labels.
// It does not validate; see Validate.
func Parse(data []byte, format Format) ([]Option, error) {
	var options []Option
	switch format {
	case JSON:
		stripped := bytes.TrimSpace(jsonc.ToJSON(data))
		if len(stripped) > 0 && stripped[0] == '{' {
			var wrapped document
			if err := json.Unmarshal(stripped, &wrapped); err != nil {
				return nil, fmt.Errorf("parsing options: %w", err)
			}
			options = wrapped.Options
		} else if err := json.Unmarshal(stripped, &options); err != nil {
			return nil, fmt.Errorf("parsing options: %w", err)
		}
	case YAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing options: %w", err)
		}
		node := &root
		if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
			node = node.Content[0]
		}
		if node.Kind == yaml.MappingNode {
			var wrapped document
			if err := node.Decode(&wrapped); err != nil {
				return nil, fmt.Errorf("parsing options: %w", err)
			}
			options = wrapped.Options
		} else if node.Kind != 0 {
			if err := node.Decode(&options); err != nil {
				return nil, fmt.Errorf("parsing options: %w", err)
			}
		}
	default:
		parsed, err := ReadLines(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return parsed, nil
	}
	return withDefaults(options), nil
}

// ReadFile reads an option file from disk, choosing the format by
// extension.
func ReadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	options, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return options, nil
}

// ReadLines reads one option per non-blank line. A tab splits a line
// into value and label; trailing carriage returns are dropped.
func ReadLines(reader io.Reader) ([]Option, error) {
	var options []Option
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		value, label, _ := strings.Cut(line, "\t")
		options = append(options, Option{Value: value, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return withDefaults(options), nil
}

// FromArgs makes one option per argument, each its own label.
func FromArgs(args []string) []Option {
	options := make([]Option, 0, len(args))
	for _, arg := range args {
		options = append(options, Option{Value: arg})
	}
	return withDefaults(options)
}

func withDefaults(options []Option) []Option {
	for index := range options {
		if options[index].Label == "" {
			options[index].Label = options[index].Value
		}
	}
	return options
}

// Validate returns an error joining every option with an empty value,
// and a warning for each value that repeats an earlier one. The select
// engine keeps duplicates, resolving the value to the later entry.
func Validate(options []Option) (warnings []string, err error) {
	var errs []error
	first := make(map[string]int, len(options))
	for index, option := range options {
		if option.Value == "" {
			errs = append(errs, fmt.Errorf("option %d (%q): %w", index, option.Label, ErrEmptyValue))
			continue
		}
		if earlier, ok := first[option.Value]; ok {
			warnings = append(warnings, fmt.Sprintf("option %d repeats value %q from option %d", index, option.Value, earlier))
			continue
		}
		first[option.Value] = index
	}
	return warnings, errors.Join(errs...)
}
