// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the picker for display in the
// status line.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" text.
	Summary string

	// Level styles the line (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears the status line once its record has been
// visible for logRecordFadeDelay. Generation matches the record it was
// scheduled for, so a newer record is not cleared early.
type logRecordFadeMsg struct {
	Generation uint64
}

// logRecordFadeDelay is how long log messages stay visible in the
// status line before fading back to the keyboard help.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are silently dropped.
//
// The handler is created before the program exists. Records arriving
// before SetProgram are dropped. Handlers derived via WithAttrs and
// WithGroup share the destination, so one SetProgram call reaches
// all of them.
type TUILogHandler struct {
	level  slog.Level
	send   *atomic.Pointer[func(tea.Msg)]
	attrs  []slog.Attr
	prefix string
}

// NewTUILogHandler creates a handler that delivers log records at or
// above the given level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level: level,
		send:  &atomic.Pointer[func(tea.Msg)]{},
	}
}

// SetProgram directs records to program. Safe to call from any
// goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program.Send)
}

// setSender installs the delivery function. Delivery happens on its
// own goroutine: program.Send blocks until the program's event loop
// receives, and a record logged from inside Update would otherwise
// deadlock.
func (handler *TUILogHandler) setSender(send func(tea.Msg)) {
	async := func(message tea.Msg) { go send(message) }
	handler.send.Store(&async)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and delivers it. Without a destination
// the record is dropped.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	send := handler.send.Load()
	if send == nil {
		return nil
	}
	(*send)(logRecordMsg{Summary: handler.summarize(record), Level: record.Level})
	return nil
}

// summarize builds "message (key=value, ...)" with handler-level
// attrs first, group names joined to keys with dots.
func (handler *TUILogHandler) summarize(record slog.Record) string {
	parts := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", handler.prefix, attr.Key, attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a handler with attrs appended. Keys pick up the
// current group prefix.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.clone()
	for _, attr := range attrs {
		attr.Key = handler.prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup returns a handler whose later keys are qualified by name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	derived := handler.clone()
	if name != "" {
		derived.prefix = handler.prefix + name + "."
	}
	return derived
}

func (handler *TUILogHandler) clone() *TUILogHandler {
	return &TUILogHandler{
		level:  handler.level,
		send:   handler.send,
		attrs:  append([]slog.Attr(nil), handler.attrs...),
		prefix: handler.prefix,
	}
}
