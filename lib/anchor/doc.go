// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package anchor computes where the select popup goes.
//
// The default placement is item-aligned: the popup is positioned and
// sized so that the selected item sits directly over the trigger. The
// selected item's text lines up horizontally with the trigger's value
// text (independent of padding inside the popup), and the item's
// vertical center lines up with the trigger's vertical center. When
// there is room above, the popup's bottom edge is anchored to the
// window margin and the popup extends upward; otherwise its top edge
// is anchored and the scrollable viewport is pre-scrolled to bring the
// item into alignment.
//
// [Compute] is a pure function of measured geometry: identical inputs
// always produce an identical [Layout]. [Positioner] holds the
// per-open-session state around it: the positioned flag, the one-shot
// re-adjustment after an overflow indicator appears, and the
// expand-on-scroll growth that lets the popup grow as the user
// scrolls.
//
// [ComputePopper] is the alternative placement that docks the popup
// below or above the trigger instead of over it.
//
// All units are abstract: CSS pixels in a browser, cells in a
// terminal.
package anchor
