// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete is returned by Validate when measurements are missing.
var ErrIncomplete = errors.New("incomplete measurements")

// ViewportMetrics describes the popup's scrollable region. Offsets are
// relative to the top of the popup content's border box.
type ViewportMetrics struct {
	// OffsetTop is the distance from the content's top border edge to
	// the viewport's top edge (border, padding, and any overflow
	// indicator above the viewport).
	OffsetTop float64

	// OffsetHeight is the viewport's rendered height.
	OffsetHeight float64

	// ScrollHeight is the full height of everything inside the
	// viewport, including its own padding.
	ScrollHeight float64

	// PaddingTop and PaddingBottom are the viewport's own padding.
	PaddingTop    float64
	PaddingBottom float64
}

// ItemMetrics describes the selected item within the viewport.
type ItemMetrics struct {
	// OffsetTop is the distance from the top of the viewport's
	// scrollable content to the item's top edge.
	OffsetTop float64

	// Height is the item's rendered height.
	Height float64

	// First and Last report the item's position among all items.
	First bool
	Last  bool
}

// ContentBox carries the popup content's border and padding widths
// and its inner height.
type ContentBox struct {
	BorderTop     float64
	BorderBottom  float64
	PaddingTop    float64
	PaddingBottom float64

	// ClientHeight is the content's height inside its borders
	// (padding included).
	ClientHeight float64
}

// Measurements is every input the positioning computation reads. The
// pointer fields are the measured rectangles the host may not have yet
// (for example before the popup has rendered once); positioning is
// skipped until all of them are present.
type Measurements struct {
	Window    Size
	Direction Direction

	// Margin overrides ContentMargin when positive.
	Margin float64

	Trigger      *Rect
	ValueNode    *Rect
	Content      *Rect
	Viewport     *ViewportMetrics
	SelectedItem *ItemMetrics
	ItemText     *Rect

	Box ContentBox
}

// Missing lists the required inputs that are absent, by name. An empty
// result means positioning can proceed.
func (measurements Measurements) Missing() []string {
	var missing []string
	if measurements.Trigger == nil {
		missing = append(missing, "trigger")
	}
	if measurements.ValueNode == nil {
		missing = append(missing, "value")
	}
	if measurements.Content == nil {
		missing = append(missing, "content")
	}
	if measurements.Viewport == nil {
		missing = append(missing, "viewport")
	}
	if measurements.SelectedItem == nil {
		missing = append(missing, "selected item")
	}
	if measurements.ItemText == nil {
		missing = append(missing, "item text")
	}
	if measurements.Window.Width <= 0 || measurements.Window.Height <= 0 {
		missing = append(missing, "window")
	}
	return missing
}

// Validate returns an error wrapping ErrIncomplete that names every
// missing input, or nil.
func (measurements Measurements) Validate() error {
	missing := measurements.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(missing, ", "))
}

func (measurements Measurements) margin() float64 {
	if measurements.Margin > 0 {
		return measurements.Margin
	}
	return ContentMargin
}
