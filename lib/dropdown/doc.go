// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dropdown is the interaction state machine of a select
// widget. A [Controller] owns the open state and the committed value,
// turns raw pointer and keyboard events into transitions, drives the
// typeahead matcher and the positioning engine, and issues imperative
// focus and scroll actions to its [Host].
//
// The controller is headless. The host renders the trigger, the popup,
// the items, and the overflow indicators; it reports input events and
// answers geometry queries. Everything runs on the host's event loop:
// the host calls a controller method for each input event and then
// drains the [eventloop.Loop], which runs the work the controller
// deferred (focus moves after positioning, typeahead focus, auto-scroll
// ticks, typeahead decay).
//
// # Pointer gestures
//
// A mouse press on the trigger opens the popup immediately and records
// where the press happened. Until the matching release the controller
// is in [Opening]. The release decides what the gesture was: within
// [DragThreshold] of the origin on both axes it was a click, and the
// release is swallowed so the item under the pointer is not selected.
// Farther away it was a drag, and the release either selects the item
// under it or, outside the popup, closes it.
//
// Touch and pen open on click instead, and items select on click.
package dropdown
