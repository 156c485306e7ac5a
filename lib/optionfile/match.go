// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package optionfile

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// BestMatch returns the value of the enabled option whose label best
// matches query under fzf's fuzzy scoring. Ties go to the earlier
// option. The query is case-insensitive unless it contains an upper
// case letter (fzf's smart case). Reports false when query is blank
// or nothing matches.
func BestMatch(options []Option, query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	caseSensitive := strings.IndexFunc(query, unicode.IsUpper) >= 0
	pattern := []rune(query)
	if !caseSensitive {
		pattern = []rune(strings.ToLower(query))
	}
	slab := util.MakeSlab(100*1024, 2048)

	bestValue := ""
	bestScore := 0
	found := false
	for _, option := range options {
		if option.Disabled || option.Value == "" {
			continue
		}
		chars := util.ToChars([]byte(option.Label))
		result, _ := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		if !found || result.Score > bestScore {
			bestValue = option.Value
			bestScore = result.Score
			found = true
		}
	}
	return bestValue, found
}
