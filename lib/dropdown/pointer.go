// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import "math"

// PointerDown handles a press. It returns true when the host should
// suppress the press's default action (text selection, focus change).
func (controller *Controller) PointerDown(event PointerEvent) bool {
	switch event.Target.Kind {
	case TargetTrigger:
		if controller.IsOpen() {
			controller.InteractOutside()
			return false
		}
		if event.Type == Mouse && event.Button == 0 && !event.Ctrl {
			controller.requestOpen(&event)
			return true
		}
	case TargetScrollUp, TargetScrollDown:
		if controller.IsOpen() {
			controller.indicatorPointer(event.Target.Kind)
		}
	case TargetOutside:
		if controller.IsOpen() && controller.gesture == nil {
			controller.InteractOutside()
		}
	}
	return false
}

// PointerMove handles pointer motion anywhere in the document.
func (controller *Controller) PointerMove(event PointerEvent) {
	controller.trackGesture(event)
	if !controller.IsOpen() {
		return
	}
	switch event.Target.Kind {
	case TargetItem:
		controller.hoverItem(event)
	case TargetScrollUp, TargetScrollDown:
		controller.indicatorPointer(event.Target.Kind)
	}
}

// PointerUp handles a release. The release that ends an opening
// gesture is classified first: within DragThreshold it is swallowed
// (the return value is true and no item is selected); beyond it, a
// release outside the popup closes it. A mouse release on an item
// otherwise selects that item.
func (controller *Controller) PointerUp(event PointerEvent) bool {
	if pending := controller.gesture; pending != nil {
		controller.trackGesture(event)
		controller.gesture = nil
		if pending.deltaX <= DragThreshold && pending.deltaY <= DragThreshold {
			return true
		}
		if !event.Target.InContent() {
			controller.logger.Debug("close on release outside",
				"delta_x", pending.deltaX,
				"delta_y", pending.deltaY,
			)
			controller.setOpen(false)
			return false
		}
	}

	if controller.IsOpen() && event.Type == Mouse && event.Target.Kind == TargetItem {
		controller.Select(event.Target.Item)
	}
	return false
}

// Click handles a completed press and release on the same target.
// Touch and pen open the popup and select items on click; mouse
// already acted on press and release. The release is already over,
// so a click open has no gesture to classify.
func (controller *Controller) Click(event PointerEvent) {
	if event.Type == Mouse {
		return
	}
	switch event.Target.Kind {
	case TargetTrigger:
		if !controller.IsOpen() {
			controller.requestOpen(nil)
		}
	case TargetItem:
		if controller.IsOpen() {
			controller.Select(event.Target.Item)
		}
	}
}

// PointerLeave handles the pointer leaving an item or an indicator.
func (controller *Controller) PointerLeave(target Target) {
	switch target.Kind {
	case TargetItem:
		if controller.focus.Kind == FocusItem && controller.focus.Item == target.Item {
			controller.focusContent()
		}
	case TargetScrollUp, TargetScrollDown:
		if controller.autoScrollTarget == target.Kind {
			controller.stopAutoScroll()
		}
	}
}

func (controller *Controller) trackGesture(event PointerEvent) {
	if controller.gesture == nil {
		return
	}
	x, y := roundPoint(event.X, event.Y)
	controller.gesture.deltaX = math.Abs(x - controller.gesture.originX)
	controller.gesture.deltaY = math.Abs(y - controller.gesture.originY)
}

// hoverItem focuses an enabled item under the mouse without scrolling.
// A disabled item hands focus back to the popup.
func (controller *Controller) hoverItem(event PointerEvent) {
	item, ok := controller.registry.Get(event.Target.Item)
	if !ok {
		return
	}
	if item.Disabled {
		controller.focusContent()
		return
	}
	if event.Type != Mouse {
		return
	}
	if controller.focus.Kind == FocusItem && controller.focus.Item == item.Handle {
		return
	}
	controller.focusTo(Focus{Kind: FocusItem, Item: item.Handle, PreventScroll: true})
}

func (controller *Controller) indicatorPointer(kind TargetKind) {
	if !controller.indicatorActive(kind) {
		return
	}
	controller.focusContent()
	controller.startAutoScroll(kind)
}

func (controller *Controller) focusContent() {
	if controller.focus.Kind == FocusContent {
		return
	}
	controller.focusTo(Focus{Kind: FocusContent})
}

func roundPoint(x, y float64) (float64, float64) {
	return math.Round(x), math.Round(y)
}
