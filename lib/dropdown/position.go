// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"math"

	"github.com/bureau-foundation/selectkit/lib/collection"
)

// Remeasure tells the controller that a positioning input changed
// (the popup rendered, an item mounted, the trigger moved). The popup
// is laid out again.
func (controller *Controller) Remeasure() {
	if !controller.IsOpen() {
		return
	}
	controller.position()
}

// Scroll reports a user scroll of the popup's viewport.
func (controller *Controller) Scroll() {
	if !controller.IsOpen() {
		return
	}
	controller.scrolled()
}

// position lays the popup out. The first success of a session queues
// the focus move and requests the frame that arms expand-on-scroll.
func (controller *Controller) position() bool {
	wasPositioned := controller.positioner.Positioned()

	measurements := controller.host.Measure(controller.alignItem())
	measurements.Direction = controller.options.Direction
	if controller.options.Margin > 0 {
		measurements.Margin = controller.options.Margin
	}

	layout, ok := controller.positioner.Position(measurements)
	if !ok {
		controller.logger.Debug("positioning deferred", "error", measurements.Validate())
		return false
	}
	if measurements.SelectedItem != nil {
		controller.itemHeight = measurements.SelectedItem.Height
	}

	controller.host.ApplyLayout(layout)
	if layout.HasScrollTop {
		controller.scrollTo(layout.ScrollTop)
	}
	controller.updateIndicators()

	session := controller.session
	controller.loop.RequestFrame(func() {
		if controller.current(session) {
			controller.positioner.Arm(controller.host.Viewport().ScrollTop)
		}
	})
	if !wasPositioned {
		controller.logger.Debug("select positioned",
			"side", layout.Vertical.Side.String(),
			"height", layout.ResolvedHeight(),
		)
		controller.loop.Post(func() {
			if controller.current(session) {
				controller.focusSelected()
			}
		})
	}
	return true
}

// focusSelected focuses the aligned item, or the popup when there are
// no items.
func (controller *Controller) focusSelected() {
	if handle := controller.alignItem(); handle != 0 {
		controller.focusFirst([]collection.Handle{handle})
		return
	}
	controller.focusTo(Focus{Kind: FocusContent})
}

// scrollTo writes the viewport offset and processes the resulting
// scroll like any other.
func (controller *Controller) scrollTo(scrollTop float64) {
	controller.host.SetScrollTop(scrollTop)
	controller.scrolled()
}

// scrolled handles a viewport offset change: expand-on-scroll growth
// and overflow indicator state.
func (controller *Controller) scrolled() {
	growth := controller.positioner.Scrolled(controller.host.Viewport().ScrollTop)
	if growth.Grew {
		controller.host.ApplyLayout(growth.Layout)
	}
	if growth.AdjustScroll {
		controller.host.SetScrollTop(growth.ScrollTop)
	}
	controller.updateIndicators()
}

// updateIndicators recomputes which overflow indicators are active.
// An indicator appearing for the first time in a session triggers the
// one-shot re-layout; an indicator disappearing stops its auto-scroll.
func (controller *Controller) updateIndicators() {
	up, down := false, false
	if controller.positioner.Positioned() {
		viewport := controller.host.Viewport()
		up = viewport.ScrollTop > 0
		down = math.Ceil(viewport.ScrollTop) < viewport.ScrollHeight-viewport.ClientHeight
	}

	appeared := (up && !controller.scrollUp) || (down && !controller.scrollDown)
	if !up && controller.autoScrollTarget == TargetScrollUp {
		controller.stopAutoScroll()
	}
	if !down && controller.autoScrollTarget == TargetScrollDown {
		controller.stopAutoScroll()
	}
	controller.scrollUp, controller.scrollDown = up, down

	if appeared {
		session := controller.session
		controller.loop.Post(func() {
			if controller.current(session) {
				controller.indicatorMounted()
			}
		})
	}
}

// indicatorMounted runs after an overflow indicator appears. The
// first one in a session re-lays the popup out, re-focuses the
// selected item and keeps it in view. Later ones leave the viewport
// alone so that a user scroll which reveals an indicator stands.
func (controller *Controller) indicatorMounted() {
	if !controller.positioner.TakeReposition() {
		return
	}
	controller.logger.Debug("repositioning after overflow indicator")
	controller.position()
	controller.focusSelected()
	if handle := controller.focusedItem(); handle != 0 {
		controller.host.ScrollIntoView(handle)
		controller.scrolled()
	}
}

func (controller *Controller) indicatorActive(kind TargetKind) bool {
	switch kind {
	case TargetScrollUp:
		return controller.scrollUp
	case TargetScrollDown:
		return controller.scrollDown
	default:
		return false
	}
}

// startAutoScroll begins repeating scroll steps toward an indicator.
// A repeat already running is left alone.
func (controller *Controller) startAutoScroll(kind TargetKind) {
	if controller.autoScroll != nil {
		return
	}
	controller.autoScrollTarget = kind
	controller.autoScroll = controller.loop.Every(controller.options.autoScrollInterval(), func() {
		controller.autoScrollStep(kind)
	})
}

func (controller *Controller) autoScrollStep(kind TargetKind) {
	if !controller.IsOpen() || !controller.indicatorActive(kind) {
		controller.stopAutoScroll()
		return
	}
	step := controller.itemHeight
	if step <= 0 {
		step = 1
	}
	if kind == TargetScrollUp {
		step = -step
	}
	controller.scrollTo(controller.host.Viewport().ScrollTop + step)
}

func (controller *Controller) stopAutoScroll() {
	if controller.autoScroll != nil {
		controller.autoScroll.Stop()
		controller.autoScroll = nil
	}
	controller.autoScrollTarget = TargetOutside
}

// AutoScrolling reports whether an indicator's repeat is running.
func (controller *Controller) AutoScrolling() bool {
	return controller.autoScroll != nil
}
