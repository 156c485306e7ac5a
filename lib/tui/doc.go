// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui is the terminal host for the select engine. Built on
// bubbletea (Elm architecture), it measures the trigger and popup in
// terminal cells, feeds keyboard and mouse input to a
// [dropdown.Controller], and renders the anchored popup over the base
// view with ANSI-aware splicing.
//
// The engine owns the interaction semantics. This package owns only
// geometry ([Surface]), drawing ([Theme], [RenderScrollbar],
// [SpliceOverlay]), input translation ([KeyMap]), and the glue that
// runs the engine's event loop inside a bubbletea program ([Picker]).
package tui
