// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package optionfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var regions = []Option{
	{Value: "eu-west-1", Label: "Ireland"},
	{Value: "eu-central-1", Label: "Frankfurt", TextValue: "Frankfurt am Main"},
	{Value: "us-east-1", Label: "N. Virginia", Disabled: true},
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`
// Regions we deploy to.
[
	{"value": "eu-west-1", "label": "Ireland"},
	{"value": "eu-central-1", "label": "Frankfurt", "text_value": "Frankfurt am Main"},
	/* Closed for new work. */
	{"value": "us-east-1", "label": "N. Virginia", "disabled": true,},
]
`)
	options, err := Parse(data, JSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(options, regions) {
		t.Errorf("Parse = %+v, want %+v", options, regions)
	}
}

func TestParseJSONWrappedAndShorthand(t *testing.T) {
	options, err := Parse([]byte(`{"options": ["red", {"value": "green", "label": "Green"}]}`), JSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Option{
		{Value: "red", Label: "red"},
		{Value: "green", Label: "Green"},
	}
	if !reflect.DeepEqual(options, want) {
		t.Errorf("Parse = %+v, want %+v", options, want)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
- value: eu-west-1
  label: Ireland
- value: eu-central-1
  label: Frankfurt
  text_value: Frankfurt am Main
- value: us-east-1
  label: N. Virginia
  disabled: true
`)
	options, err := Parse(data, YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(options, regions) {
		t.Errorf("Parse = %+v, want %+v", options, regions)
	}
}

func TestParseYAMLWrappedAndShorthand(t *testing.T) {
	options, err := Parse([]byte("options:\n  - red\n  - value: green\n    label: Green\n"), YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Option{
		{Value: "red", Label: "red"},
		{Value: "green", Label: "Green"},
	}
	if !reflect.DeepEqual(options, want) {
		t.Errorf("Parse = %+v, want %+v", options, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"truncated json", `[{"value": "a"`, JSON},
		{"json scalar", `42`, JSON},
		{"bad yaml", "- value: [unclosed\n", YAML},
	}
	for _, test := range tests {
		if _, err := Parse([]byte(test.data), test.format); err == nil {
			t.Errorf("%s: Parse succeeded, want error", test.name)
		}
	}
}

func TestReadLines(t *testing.T) {
	input := "apple\r\n\nbanana\tBanana split\n   \ncherry\n"
	options, err := ReadLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	want := []Option{
		{Value: "apple", Label: "apple"},
		{Value: "banana", Label: "Banana split"},
		{Value: "cherry", Label: "cherry"},
	}
	if !reflect.DeepEqual(options, want) {
		t.Errorf("ReadLines = %+v, want %+v", options, want)
	}
}

func TestFromArgs(t *testing.T) {
	options := FromArgs([]string{"left", "right"})
	want := []Option{{Value: "left", Label: "left"}, {Value: "right", Label: "right"}}
	if !reflect.DeepEqual(options, want) {
		t.Errorf("FromArgs = %+v, want %+v", options, want)
	}
}

func TestReadFileChoosesFormat(t *testing.T) {
	directory := t.TempDir()
	files := map[string]string{
		"regions.jsonc": `["a", "b",]`,
		"regions.yml":   "- a\n- b\n",
		"regions.txt":   "a\nb\n",
	}
	want := []Option{{Value: "a", Label: "a"}, {Value: "b", Label: "b"}}
	for name, content := range files {
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		options, err := ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile(%s): %v", name, err)
			continue
		}
		if !reflect.DeepEqual(options, want) {
			t.Errorf("ReadFile(%s) = %+v, want %+v", name, options, want)
		}
	}

	if _, err := ReadFile(filepath.Join(directory, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile of a missing file: %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":  JSON,
		"a.JSONC": JSON,
		"a.yaml":  YAML,
		"a.yml":   YAML,
		"a.txt":   Lines,
		"options": Lines,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	warnings, err := Validate(regions)
	if err != nil || len(warnings) != 0 {
		t.Errorf("Validate(regions) = %v, %v", warnings, err)
	}

	options := []Option{
		{Value: "a", Label: "A"},
		{Value: "", Label: "blank"},
		{Value: "a", Label: "A again"},
	}
	warnings, err = Validate(options)
	if !errors.Is(err, ErrEmptyValue) {
		t.Errorf("Validate error = %v, want ErrEmptyValue", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"a"`) {
		t.Errorf("Validate warnings = %v, want one duplicate warning", warnings)
	}
}
