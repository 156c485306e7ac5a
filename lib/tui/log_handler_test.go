// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/selectkit/lib/testutil"
)

func captureHandler(level slog.Level) (*TUILogHandler, <-chan tea.Msg) {
	messages := make(chan tea.Msg, 8)
	handler := NewTUILogHandler(level)
	handler.setSender(func(message tea.Msg) { messages <- message })
	return handler, messages
}

func TestTUILogHandlerDeliversRecords(t *testing.T) {
	handler, messages := captureHandler(slog.LevelWarn)
	logger := slog.New(handler).With("file", "fruits.yaml").WithGroup("option")

	logger.Warn("duplicate value", "value", "fig", "index", 7)

	message := testutil.RequireReceive(t, messages, 5*time.Second, "waiting for log record")
	record, ok := message.(logRecordMsg)
	if !ok {
		t.Fatalf("received %T, want logRecordMsg", message)
	}
	want := "duplicate value (file=fruits.yaml, option.value=fig, option.index=7)"
	if record.Summary != want {
		t.Errorf("Summary = %q, want %q", record.Summary, want)
	}
	if record.Level != slog.LevelWarn {
		t.Errorf("Level = %v", record.Level)
	}
}

func TestTUILogHandlerLevel(t *testing.T) {
	handler, _ := captureHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on a warn handler")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled on a warn handler")
	}
}

func TestTUILogHandlerDropsWithoutProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelDebug)
	if err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "lost", 0)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestTUILogHandlerDerivedShareDestination(t *testing.T) {
	messages := make(chan tea.Msg, 1)
	root := NewTUILogHandler(slog.LevelInfo)
	derived := slog.New(root).With("component", "picker")

	root.setSender(func(message tea.Msg) { messages <- message })
	derived.Info("ready")

	message := testutil.RequireReceive(t, messages, 5*time.Second, "waiting for derived record")
	if got := message.(logRecordMsg).Summary; got != "ready (component=picker)" {
		t.Errorf("Summary = %q", got)
	}
}
