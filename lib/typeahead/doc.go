// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typeahead implements prefix search-as-you-type over the item
// registry.
//
// Keystrokes accumulate in a short-lived buffer that empties 1000ms
// after the last key. Each keystroke searches forward from the current
// item, wrapping to the start. Pressing the same key repeatedly cycles
// through items that share that initial instead of requiring an ever
// longer exact prefix.
package typeahead
