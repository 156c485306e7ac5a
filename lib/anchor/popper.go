// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import "math"

// Align positions the popup along the trigger's edge in popper mode.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// PopperOptions tunes popper placement.
type PopperOptions struct {
	// Side is the preferred side: SideBottom (the default) or SideTop.
	// The popup flips when it does not fit and the other side has
	// more room.
	Side Side

	// SideOffset is the gap between the trigger and the popup.
	SideOffset float64

	Align       Align
	AlignOffset float64

	// CollisionPadding is the gap kept from the window edges. Zero
	// selects the measurements' margin.
	CollisionPadding float64
}

// ComputePopper docks the popup below or above the trigger. It needs
// the trigger, the content, and the window; the viewport is optional
// and, when present, supplies the content's natural height. The
// returned Side is where the popup actually went.
func ComputePopper(measurements Measurements, options PopperOptions) (Layout, Side, bool) {
	if measurements.Trigger == nil || measurements.Content == nil ||
		measurements.Window.Width <= 0 || measurements.Window.Height <= 0 {
		return Layout{}, options.Side, false
	}
	window := measurements.Window
	trigger := *measurements.Trigger
	content := *measurements.Content

	padding := options.CollisionPadding
	if padding <= 0 {
		padding = measurements.margin()
	}

	naturalHeight := content.Height
	if measurements.Viewport != nil {
		box := measurements.Box
		naturalHeight = box.BorderTop + box.PaddingTop + measurements.Viewport.ScrollHeight + box.PaddingBottom + box.BorderBottom
	}

	spaceBelow := math.Max(0, window.Height-padding-(trigger.Bottom()+options.SideOffset))
	spaceAbove := math.Max(0, trigger.Top()-options.SideOffset-padding)

	side := options.Side
	if side != SideTop {
		side = SideBottom
	}
	switch side {
	case SideBottom:
		if naturalHeight > spaceBelow && spaceAbove > spaceBelow {
			side = SideTop
		}
	case SideTop:
		if naturalHeight > spaceAbove && spaceBelow > spaceAbove {
			side = SideBottom
		}
	}

	available := spaceBelow
	if side == SideTop {
		available = spaceAbove
	}
	height := math.Min(naturalHeight, available)

	maxWidth := math.Max(0, window.Width-2*padding)
	width := math.Min(math.Max(content.Width, trigger.Width), maxWidth)

	align := options.Align
	alignOffset := options.AlignOffset
	if measurements.Direction == RightToLeft {
		switch align {
		case AlignStart:
			align = AlignEnd
		case AlignEnd:
			align = AlignStart
		}
		alignOffset = -alignOffset
	}

	var x float64
	switch align {
	case AlignCenter:
		x = trigger.Left() + (trigger.Width-width)/2
	case AlignEnd:
		x = trigger.Right() - width
	default:
		x = trigger.Left()
	}
	x = clamp(x+alignOffset, padding, math.Max(padding, window.Width-padding-width))

	layout := Layout{
		Mode: Popper,
		Horizontal: Horizontal{
			Side:     SideLeft,
			Offset:   x,
			Width:    width,
			MinWidth: math.Min(trigger.Width, maxWidth),
			MaxWidth: maxWidth,
		},
		Vertical: Vertical{
			Height:    height,
			MaxHeight: available,
		},
	}
	if side == SideTop {
		layout.Vertical.Side = SideBottom
		layout.Vertical.Offset = window.Height - (trigger.Top() - options.SideOffset)
	} else {
		layout.Vertical.Side = SideTop
		layout.Vertical.Offset = trigger.Bottom() + options.SideOffset
	}
	return layout, side, true
}
