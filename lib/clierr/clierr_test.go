// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clierr

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("unknown position %q", "floating")
	if err.Error() != `unknown position "floating"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := Validation("no options to choose from").
		WithHint("Pass options as arguments, with --file, or on stdin.")

	want := "no options to choose from\n\nPass options as arguments, with --file, or on stdin."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_WithHintReturnsReceiver(t *testing.T) {
	original := Validation("bad input")
	chained := original.WithHint("fix it")
	if original != chained {
		t.Error("WithHint should return the same pointer")
	}
}

func TestToolError_HintSurvivesErrorsAs(t *testing.T) {
	inner := NotFound("option file missing").WithHint("check --file")
	wrapped := fmt.Errorf("loading options: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Hint != "check --file" {
		t.Errorf("Hint = %q after unwrap", toolErr.Hint)
	}
}

func TestToolError_EmptyHintNotAppended(t *testing.T) {
	err := Internal("unexpected failure")
	if strings.Contains(err.Error(), "\n\n") {
		t.Error("empty hint should not add blank line to error message")
	}
}

func TestToolError_UnwrapsCause(t *testing.T) {
	err := NotFound("reading options: %w", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		printable bool
	}{
		{"nil", nil, 0, false},
		{"dismissed", &ExitError{Code: 1}, 1, false},
		{"validation", Validation("bad"), 2, true},
		{"not found", fmt.Errorf("wrapped: %w", NotFound("missing")), 3, true},
		{"internal", Internal("bug"), 4, true},
		{"plain", errors.New("boom"), 1, true},
	}
	for _, test := range tests {
		code, printable := ExitCode(test.err)
		if code != test.code || printable != test.printable {
			t.Errorf("%s: ExitCode = %d, %v; want %d, %v", test.name, code, printable, test.code, test.printable)
		}
	}
}
