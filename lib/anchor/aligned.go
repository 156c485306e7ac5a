// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import "math"

// Compute returns the item-aligned layout for the given measurements.
// The boolean is false when a required input is missing, in which case
// the caller should leave the popup unpositioned and retry on the next
// measurement change.
func Compute(measurements Measurements) (Layout, bool) {
	if measurements.Validate() != nil {
		return Layout{}, false
	}
	margin := measurements.margin()

	layout := Layout{Mode: ItemAligned}
	layout.Horizontal = alignHorizontal(measurements, margin)
	layout.Vertical, layout.ScrollTop, layout.HasScrollTop = alignVertical(measurements, margin)
	return layout, true
}

// alignHorizontal lines the selected item's text up with the trigger's
// value text. In right-to-left mode every edge is mirrored and the
// offset is measured from the window's right edge.
func alignHorizontal(measurements Measurements, margin float64) Horizontal {
	window := measurements.Window
	trigger := *measurements.Trigger
	valueNode := *measurements.ValueNode
	content := *measurements.Content
	itemText := *measurements.ItemText

	var offset, delta float64
	side := SideLeft
	if measurements.Direction == RightToLeft {
		side = SideRight
		itemTextOffset := content.Right() - itemText.Right()
		offset = window.Width - valueNode.Right() - itemTextOffset
		delta = (window.Width - trigger.Right()) - offset
	} else {
		itemTextOffset := itemText.Left() - content.Left()
		offset = valueNode.Left() - itemTextOffset
		delta = trigger.Left() - offset
	}

	minContentWidth := trigger.Width + delta
	maxWidth := math.Max(0, window.Width-2*margin)
	width := math.Min(math.Max(minContentWidth, content.Width), maxWidth)

	farEdge := window.Width - margin
	clamped := clamp(offset, margin, math.Max(margin, farEdge-width))

	return Horizontal{
		Side:     side,
		Offset:   clamped,
		Width:    width,
		MinWidth: width,
		MaxWidth: maxWidth,
	}
}

// alignVertical lines the selected item's center up with the trigger's
// center. It returns the vertical anchor and, for top-anchored
// layouts, the viewport scroll offset that completes the alignment.
func alignVertical(measurements Measurements, margin float64) (Vertical, float64, bool) {
	window := measurements.Window
	trigger := *measurements.Trigger
	viewport := *measurements.Viewport
	item := *measurements.SelectedItem
	box := measurements.Box

	availableHeight := math.Max(0, window.Height-2*margin)
	fullContentHeight := box.BorderTop + box.PaddingTop + viewport.ScrollHeight + box.PaddingBottom + box.BorderBottom
	minContentHeight := math.Min(item.Height*MinVisibleItems, fullContentHeight)

	topEdgeToTriggerMiddle := trigger.CenterY() - margin
	triggerMiddleToBottomEdge := availableHeight - topEdgeToTriggerMiddle

	halfItem := item.Height / 2
	itemOffsetMiddle := item.OffsetTop + halfItem
	contentTopToItemMiddle := box.BorderTop + box.PaddingTop + itemOffsetMiddle
	itemMiddleToContentBottom := fullContentHeight - contentTopToItemMiddle

	vertical := Vertical{
		Offset:    margin,
		MinHeight: minContentHeight,
		MaxHeight: availableHeight,
	}

	if contentTopToItemMiddle <= topEdgeToTriggerMiddle {
		// Everything above the item fits between the window's top
		// margin and the trigger's center, so the bottom edge anchors
		// and the popup extends upward.
		var lastPadding float64
		if item.Last {
			lastPadding = viewport.PaddingBottom
		}
		viewportOffsetBottom := box.ClientHeight - viewport.OffsetTop - viewport.OffsetHeight
		below := math.Max(triggerMiddleToBottomEdge, halfItem+lastPadding+viewportOffsetBottom+box.BorderBottom)

		vertical.Side = SideBottom
		vertical.Height = contentTopToItemMiddle + below
		return vertical, 0, false
	}

	var firstPadding float64
	if item.First {
		firstPadding = viewport.PaddingTop
	}
	above := math.Max(topEdgeToTriggerMiddle, box.BorderTop+viewport.OffsetTop+firstPadding+halfItem)

	vertical.Side = SideTop
	vertical.Height = above + itemMiddleToContentBottom

	scrollTop := math.Max(0, viewport.OffsetTop+itemOffsetMiddle-topEdgeToTriggerMiddle)
	return vertical, scrollTop, true
}
