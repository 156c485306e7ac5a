// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"log/slog"
	"time"

	"github.com/bureau-foundation/selectkit/lib/anchor"
)

// DragThreshold is how far, on either axis, the pointer must travel
// between the press that opened the popup and its release for the
// release to count as a drag rather than a click.
const DragThreshold = 10

// AutoScrollInterval is the repeat period of an overflow indicator
// while the pointer rests on it.
const AutoScrollInterval = 50 * time.Millisecond

// Options configures a Controller. The zero value is an uncontrolled,
// closed, item-aligned select with no value.
type Options struct {
	// Value makes the committed value owner-controlled: the controller
	// reads it on every access and only reports changes through
	// OnValueChange. When nil, DefaultValue seeds internal state.
	Value         *string
	DefaultValue  string
	OnValueChange func(value string)

	// OnSelect is called whenever an enabled item is chosen, even when
	// its value is already the committed one.
	OnSelect func(value string)

	// Open makes the open state owner-controlled, like Value. An owner
	// that changes *Open outside OnOpenChange calls Controller.Sync.
	Open         *bool
	DefaultOpen  bool
	OnOpenChange func(open bool)

	// Disabled blocks opening and trigger typeahead.
	Disabled bool

	// Placeholder is what DisplayText returns when nothing is
	// selected.
	Placeholder string

	Direction anchor.Direction
	Mode      anchor.Mode
	Popper    anchor.PopperOptions

	// Margin overrides anchor.ContentMargin when positive.
	Margin float64

	// TypeaheadDelay overrides typeahead.ResetDelay when positive.
	TypeaheadDelay time.Duration

	// AutoScrollInterval overrides the package default when positive.
	AutoScrollInterval time.Duration

	Logger *slog.Logger
}

func (options Options) autoScrollInterval() time.Duration {
	if options.AutoScrollInterval > 0 {
		return options.AutoScrollInterval
	}
	return AutoScrollInterval
}

func (options Options) logger() *slog.Logger {
	if options.Logger != nil {
		return options.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// State is the controller's interaction state.
type State int

const (
	// Closed: the popup is not shown.
	Closed State = iota
	// Opening: a mouse press on the trigger opened the popup and its
	// release has not arrived yet.
	Opening
	// Open: the popup is shown and no opening gesture is pending.
	Open
)

// String returns the state name.
func (state State) String() string {
	switch state {
	case Opening:
		return "opening"
	case Open:
		return "open"
	default:
		return "closed"
	}
}
