// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import "math"

// ContentMargin is the minimum gap kept between the popup and the
// window edges.
const ContentMargin = 10

// MinVisibleItems is how many item heights the popup is guaranteed to
// show, so that a short window near a screen edge stays usable.
const MinVisibleItems = 5

// Rect is an axis-aligned rectangle in window coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Left returns the x coordinate of the left edge.
func (rect Rect) Left() float64 { return rect.X }

// Right returns the x coordinate of the right edge.
func (rect Rect) Right() float64 { return rect.X + rect.Width }

// Top returns the y coordinate of the top edge.
func (rect Rect) Top() float64 { return rect.Y }

// Bottom returns the y coordinate of the bottom edge.
func (rect Rect) Bottom() float64 { return rect.Y + rect.Height }

// CenterY returns the y coordinate of the vertical center.
func (rect Rect) CenterY() float64 { return rect.Y + rect.Height/2 }

// Contains reports whether the point lies inside the rectangle. The
// right and bottom edges are exclusive.
func (rect Rect) Contains(x, y float64) bool {
	return x >= rect.X && x < rect.Right() && y >= rect.Y && y < rect.Bottom()
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Direction is the reading direction of the widget. Horizontal
// placement mirrors for right-to-left.
type Direction int

const (
	// LeftToRight is the default direction.
	LeftToRight Direction = iota
	// RightToLeft mirrors horizontal placement.
	RightToLeft
)

// String returns "ltr" or "rtl".
func (direction Direction) String() string {
	if direction == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Side names the popup edge a layout offset is measured from.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the CSS name of the side.
func (side Side) String() string {
	switch side {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

func clamp(value, low, high float64) float64 {
	return math.Min(high, math.Max(low, value))
}
