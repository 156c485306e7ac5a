// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typeahead

import (
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/selectkit/lib/collection"
)

// Normalize lowercases search and collapses a run of one repeated
// character ("bbb") to that character. Repeated presses of a key then
// behave like a fresh single-key search.
func Normalize(search string) string {
	lowered := strings.ToLower(search)
	if utf8.RuneCountInString(lowered) < 2 {
		return lowered
	}
	first, size := utf8.DecodeRuneInString(lowered)
	for _, character := range lowered[size:] {
		if character != first {
			return lowered
		}
	}
	return string(first)
}

// FindNextItem returns the first enabled item whose text starts with
// the normalized search, scanning forward from current and wrapping.
// current is the zero Handle when nothing is current.
//
// A single-character search never returns the current item, so one
// keystroke always moves away from it. A longer search may still match
// the current item; in that case the result is "no change" rather than
// the current item. FindNextItem never returns current.
func FindNextItem(items []collection.Item, search string, current collection.Handle) (collection.Item, bool) {
	normalized := Normalize(search)
	if normalized == "" {
		return collection.Item{}, false
	}

	enabled := make([]collection.Item, 0, len(items))
	currentIndex := -1
	for _, item := range items {
		if item.Disabled {
			continue
		}
		if item.Handle == current && current != 0 {
			currentIndex = len(enabled)
		}
		enabled = append(enabled, item)
	}

	start := currentIndex
	if start < 0 {
		start = 0
	}
	excludeCurrent := utf8.RuneCountInString(normalized) == 1

	for offset := range enabled {
		candidate := enabled[(start+offset)%len(enabled)]
		if excludeCurrent && current != 0 && candidate.Handle == current {
			continue
		}
		if strings.HasPrefix(strings.ToLower(candidate.TextValue), normalized) {
			if current != 0 && candidate.Handle == current {
				return collection.Item{}, false
			}
			return candidate, true
		}
	}
	return collection.Item{}, false
}
