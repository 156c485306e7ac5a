// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/collection"
)

// Host is the rendering layer the controller drives. Every method is
// called on the event loop's goroutine.
type Host interface {
	// Measure returns the current geometry, using item as the item the
	// popup aligns to. Inputs the host cannot measure yet are left nil.
	Measure(item collection.Handle) anchor.Measurements

	// ApplyLayout writes the popup's placement. The popup stays
	// invisible until the first layout arrives.
	ApplyLayout(layout anchor.Layout)

	// Viewport returns the scroll state of the popup's scrollable
	// region.
	Viewport() Viewport

	// SetScrollTop scrolls the viewport. The host clamps the offset
	// to the scrollable range.
	SetScrollTop(scrollTop float64)

	// ScrollIntoView scrolls the viewport the minimum distance that
	// makes the item fully visible.
	ScrollIntoView(item collection.Handle)

	// Focus moves keyboard focus.
	Focus(focus Focus)
}

// Viewport is the scroll state of the popup's scrollable region.
type Viewport struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// MaxScrollTop returns the largest valid scroll offset.
func (viewport Viewport) MaxScrollTop() float64 {
	if viewport.ScrollHeight <= viewport.ClientHeight {
		return 0
	}
	return viewport.ScrollHeight - viewport.ClientHeight
}

// FocusKind is what holds keyboard focus.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusTrigger
	FocusContent
	FocusItem
)

// String returns a short name for logs.
func (kind FocusKind) String() string {
	switch kind {
	case FocusTrigger:
		return "trigger"
	case FocusContent:
		return "content"
	case FocusItem:
		return "item"
	default:
		return "none"
	}
}

// Focus is a focus move request.
type Focus struct {
	Kind FocusKind

	// Item is set when Kind is FocusItem.
	Item collection.Handle

	// PreventScroll asks the host not to scroll the focused element
	// into view.
	PreventScroll bool
}
