// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import "math"

// Growth is the result of a viewport scroll while expand-on-scroll is
// armed.
type Growth struct {
	// Grew is set when the popup height changed. Layout carries the
	// new height.
	Grew   bool
	Layout Layout

	// AdjustScroll is set when the host must write ScrollTop back to
	// the viewport so bottom-anchored content stays pinned while the
	// popup grows.
	AdjustScroll bool
	ScrollTop    float64
}

// Positioner holds the positioning state of one open session. It is
// not safe for concurrent use; it lives on the widget's event loop.
type Positioner struct {
	mode   Mode
	popper PopperOptions

	layout     Layout
	placement  Side
	positioned bool

	shouldReposition bool
	shouldExpand     bool
	prevScrollTop    float64
}

// NewPositioner returns a positioner for the given placement mode.
// The popper options are ignored in item-aligned mode.
func NewPositioner(mode Mode, popper PopperOptions) *Positioner {
	return &Positioner{
		mode:             mode,
		popper:           popper,
		shouldReposition: true,
	}
}

// Mode returns the placement mode.
func (positioner *Positioner) Mode() Mode { return positioner.mode }

// Position computes the layout for the current measurements. On
// success the positioner becomes positioned and remembers the layout.
// With incomplete measurements it returns false and changes nothing.
func (positioner *Positioner) Position(measurements Measurements) (Layout, bool) {
	var (
		layout Layout
		ok     bool
	)
	if positioner.mode == Popper {
		layout, positioner.placement, ok = ComputePopper(measurements, positioner.popper)
	} else {
		layout, ok = Compute(measurements)
	}
	if !ok {
		return Layout{}, false
	}
	positioner.layout = layout
	positioner.positioned = true
	return layout, true
}

// Positioned reports whether a layout has been computed this session.
func (positioner *Positioner) Positioned() bool { return positioner.positioned }

// Layout returns the current layout, including any growth applied by
// Scrolled.
func (positioner *Positioner) Layout() Layout { return positioner.layout }

// Placement returns the side the popup was docked to in popper mode.
func (positioner *Positioner) Placement() Side { return positioner.placement }

// Arm enables expand-on-scroll. It must run on the animation frame
// after positioning so the initial alignment scroll is not mistaken
// for a user scroll. scrollTop is the viewport's offset at that
// moment. Popper layouts never grow.
func (positioner *Positioner) Arm(scrollTop float64) {
	if positioner.mode != ItemAligned || !positioner.positioned {
		return
	}
	positioner.shouldExpand = true
	positioner.prevScrollTop = scrollTop
}

// Armed reports whether expand-on-scroll is active.
func (positioner *Positioner) Armed() bool { return positioner.shouldExpand }

// Scrolled records a viewport scroll. When armed, the popup grows by
// the distance scrolled until it reaches its maximum height.
func (positioner *Positioner) Scrolled(scrollTop float64) Growth {
	var growth Growth
	defer func() {
		positioner.prevScrollTop = scrollTop
		if growth.AdjustScroll {
			positioner.prevScrollTop = growth.ScrollTop
		}
	}()

	if !positioner.shouldExpand {
		return growth
	}
	scrolledBy := math.Abs(positioner.prevScrollTop - scrollTop)
	if scrolledBy == 0 {
		return growth
	}

	vertical := positioner.layout.Vertical
	available := vertical.MaxHeight
	previousHeight := math.Max(vertical.MinHeight, vertical.Height)
	if previousHeight >= available {
		return growth
	}

	next := previousHeight + scrolledBy
	clamped := math.Min(available, next)
	positioner.layout = positioner.layout.WithHeight(clamped)

	growth.Grew = true
	growth.Layout = positioner.layout
	if vertical.Side == SideBottom {
		growth.AdjustScroll = true
		growth.ScrollTop = math.Max(0, next-clamped)
	}
	return growth
}

// TakeReposition reports whether the one-shot re-adjustment is still
// available and consumes it. The first call after an overflow
// indicator mounts returns true; every later call in the same session
// returns false.
func (positioner *Positioner) TakeReposition() bool {
	if !positioner.positioned || !positioner.shouldReposition {
		return false
	}
	positioner.shouldReposition = false
	return true
}

// Reset clears session state when the popup closes.
func (positioner *Positioner) Reset() {
	positioner.layout = Layout{}
	positioner.placement = SideBottom
	positioner.positioned = false
	positioner.shouldReposition = true
	positioner.shouldExpand = false
	positioner.prevScrollTop = 0
}
