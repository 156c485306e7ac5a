// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import "math"

// Mode selects the placement strategy.
type Mode int

const (
	// ItemAligned places the popup over the trigger so the selected
	// item overlaps the trigger's value.
	ItemAligned Mode = iota
	// Popper docks the popup below or above the trigger.
	Popper
)

// String returns the configuration name of the mode.
func (mode Mode) String() string {
	if mode == Popper {
		return "popper"
	}
	return "item-aligned"
}

// ParseMode accepts "item-aligned" and "popper". The empty string
// selects ItemAligned.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "", "item-aligned":
		return ItemAligned, true
	case "popper":
		return Popper, true
	default:
		return ItemAligned, false
	}
}

// Horizontal is the horizontal half of a layout: the popup's leading
// edge sits Offset units from the window's Side edge.
type Horizontal struct {
	Side     Side
	Offset   float64
	Width    float64
	MinWidth float64
	MaxWidth float64
}

// Vertical is the vertical half of a layout: the popup's Side edge sits
// Offset units from the same window edge. Height is the preferred
// height before MinHeight and MaxHeight are applied.
type Vertical struct {
	Side      Side
	Offset    float64
	Height    float64
	MinHeight float64
	MaxHeight float64
}

// Layout is a computed popup placement. It is derived purely from
// measurements and never persisted.
type Layout struct {
	Mode       Mode
	Horizontal Horizontal
	Vertical   Vertical

	// ScrollTop is the initial viewport scroll offset to apply when
	// HasScrollTop is set.
	ScrollTop    float64
	HasScrollTop bool
}

// ResolvedHeight applies the height constraints the way CSS does: the
// maximum caps the preferred height and the minimum wins over both. A
// zero MaxHeight means unbounded.
func (layout Layout) ResolvedHeight() float64 {
	height := layout.Vertical.Height
	if layout.Vertical.MaxHeight > 0 {
		height = math.Min(height, layout.Vertical.MaxHeight)
	}
	return math.Max(height, layout.Vertical.MinHeight)
}

// Rect resolves the layout into absolute window coordinates.
func (layout Layout) Rect(window Size) Rect {
	height := layout.ResolvedHeight()
	width := layout.Horizontal.Width

	var rect Rect
	rect.Width = width
	rect.Height = height

	if layout.Horizontal.Side == SideRight {
		rect.X = window.Width - layout.Horizontal.Offset - width
	} else {
		rect.X = layout.Horizontal.Offset
	}
	if layout.Vertical.Side == SideBottom {
		rect.Y = window.Height - layout.Vertical.Offset - height
	} else {
		rect.Y = layout.Vertical.Offset
	}
	return rect
}

// WithHeight returns a copy of the layout with a new preferred height.
func (layout Layout) WithHeight(height float64) Layout {
	layout.Vertical.Height = height
	return layout
}
