// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typeahead

import (
	"time"

	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/eventloop"
)

// ResetDelay is how long the buffer survives after the last keystroke.
const ResetDelay = 1000 * time.Millisecond

// Matcher owns the rolling search buffer for one widget. It must be
// used from the loop's goroutine.
type Matcher struct {
	loop  *eventloop.Loop
	delay time.Duration

	buffer   string
	deadline time.Time
	timer    *eventloop.Timer
}

// NewMatcher creates a matcher whose reset timer runs on loop. A
// non-positive delay selects ResetDelay.
func NewMatcher(loop *eventloop.Loop, delay time.Duration) *Matcher {
	if delay <= 0 {
		delay = ResetDelay
	}
	return &Matcher{loop: loop, delay: delay}
}

// Feed appends key to the buffer and searches items from current.
// The buffer is updated (and its decay window restarted) whether or not
// anything matches. A buffer whose deadline has passed is treated as
// empty even if the reset timer has not been drained yet.
func (matcher *Matcher) Feed(key rune, items []collection.Item, current collection.Handle) (collection.Item, bool) {
	now := matcher.loop.Clock().Now()
	if matcher.buffer != "" && !now.Before(matcher.deadline) {
		matcher.buffer = ""
	}

	matcher.buffer += string(key)
	matcher.deadline = now.Add(matcher.delay)
	matcher.rearm()

	return FindNextItem(items, matcher.buffer, current)
}

// Search returns the raw buffer.
func (matcher *Matcher) Search() string {
	if matcher.buffer != "" && !matcher.loop.Clock().Now().Before(matcher.deadline) {
		return ""
	}
	return matcher.buffer
}

// Searching reports whether a search is in progress. While it is, a
// space keystroke belongs to the search instead of opening the popup
// or selecting an item.
func (matcher *Matcher) Searching() bool {
	return matcher.Search() != ""
}

// Reset empties the buffer and cancels the reset timer.
func (matcher *Matcher) Reset() {
	matcher.buffer = ""
	matcher.deadline = time.Time{}
	if matcher.timer != nil {
		matcher.timer.Stop()
		matcher.timer = nil
	}
}

func (matcher *Matcher) rearm() {
	if matcher.timer != nil {
		matcher.timer.Stop()
	}
	matcher.timer = matcher.loop.AfterFunc(matcher.delay, func() {
		matcher.buffer = ""
		matcher.timer = nil
	})
}
