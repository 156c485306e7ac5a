// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/dropdown"
)

// Screen layout of the picker, in cells. The prompt occupies row 0 and
// the trigger sits on TriggerRow, inset TriggerInset columns from the
// leading edge.
const (
	TriggerRow   = 2
	TriggerInset = 4
)

// Popup row layout: border, space, marker, space, label, space,
// scrollbar, border. The label starts textInset cells in from the
// popup's leading edge.
const (
	popupChrome = 7
	textInset   = 4
)

// Frame is the popup's resolved on-screen geometry.
type Frame struct {
	X, Y          int
	Width, Height int

	// Up and Down report the overflow indicator rows, which sit
	// inside the borders and shrink the viewport.
	Up, Down bool

	// Rows is the number of item rows the viewport shows, starting at
	// item ScrollTop.
	Rows      int
	ScrollTop int
}

// Contains reports whether the cell (x, y) is inside the frame.
func (frame Frame) Contains(x, y int) bool {
	return x >= frame.X && x < frame.X+frame.Width &&
		y >= frame.Y && y < frame.Y+frame.Height
}

// ViewportY returns the screen row of the first viewport row.
func (frame Frame) ViewportY() int {
	return frame.Y + 1 + boolInt(frame.Up)
}

// Surface lays the trigger and the popup out in terminal cells. It
// implements [dropdown.Host]: the controller asks it for measurements
// and tells it where the popup goes, how far the viewport scrolls,
// and what is focused. Items are one row tall.
type Surface struct {
	registry  *collection.Registry
	direction anchor.Direction

	window      anchor.Size
	text        string
	placeholder string

	layout    anchor.Layout
	laidOut   bool
	scrollTop int
	focus     dropdown.Focus
}

// NewSurface creates a surface for the items in registry.
func NewSurface(registry *collection.Registry, direction anchor.Direction, placeholder string) *Surface {
	return &Surface{
		registry:    registry,
		direction:   direction,
		placeholder: placeholder,
	}
}

// SetWindow sets the area available to the trigger and popup. Zero
// dimensions leave the surface unmeasurable.
func (surface *Surface) SetWindow(width, height int) {
	surface.window = anchor.Size{Width: float64(max(width, 0)), Height: float64(max(height, 0))}
}

// Window returns the area set by SetWindow.
func (surface *Surface) Window() anchor.Size { return surface.window }

// SetText sets the text the trigger shows.
func (surface *Surface) SetText(text string) { surface.text = text }

// Text returns the trigger's text.
func (surface *Surface) Text() string { return surface.text }

// Direction returns the text direction the surface mirrors for.
func (surface *Surface) Direction() anchor.Direction { return surface.direction }

// LabelWidth returns the width of the widest item label or the
// placeholder, whichever is wider.
func (surface *Surface) LabelWidth() int {
	width := ansi.StringWidth(surface.placeholder)
	for _, item := range surface.registry.List() {
		width = max(width, ansi.StringWidth(Label(item)))
	}
	return width
}

// TriggerWidth returns the trigger's width: the widest label plus a
// cell of padding on each side and the " ▾" affordance.
func (surface *Surface) TriggerWidth() int {
	return surface.LabelWidth() + 4
}

// TriggerRect returns the trigger's cell rectangle.
func (surface *Surface) TriggerRect() anchor.Rect {
	width := float64(surface.TriggerWidth())
	x := float64(TriggerInset)
	if surface.direction == anchor.RightToLeft {
		x = math.Max(0, surface.window.Width-TriggerInset-width)
	}
	return anchor.Rect{X: x, Y: TriggerRow, Width: width, Height: 1}
}

// valueRect returns the rectangle of the trigger's text: one cell in
// from the leading edge.
func (surface *Surface) valueRect() anchor.Rect {
	trigger := surface.TriggerRect()
	width := float64(ansi.StringWidth(surface.text))
	if surface.direction == anchor.RightToLeft {
		return anchor.Rect{X: trigger.Right() - 1 - width, Y: trigger.Y, Width: width, Height: 1}
	}
	return anchor.Rect{X: trigger.X + 1, Y: trigger.Y, Width: width, Height: 1}
}

// naturalWidth is the popup width that fits every label.
func (surface *Surface) naturalWidth() int {
	return surface.LabelWidth() + popupChrome
}

// Measure implements [dropdown.Host].
func (surface *Surface) Measure(item collection.Handle) anchor.Measurements {
	measurements := anchor.Measurements{Window: surface.window}
	if surface.window.Width <= 0 || surface.window.Height <= 0 {
		return measurements
	}

	count := surface.registry.Len()
	width := float64(surface.naturalWidth())
	trigger := surface.TriggerRect()
	value := surface.valueRect()
	measurements.Trigger = &trigger
	measurements.ValueNode = &value
	measurements.Content = &anchor.Rect{Width: width, Height: float64(count + 2)}

	viewport := anchor.ViewportMetrics{
		OffsetTop:    1,
		OffsetHeight: float64(count),
		ScrollHeight: float64(count),
	}
	clientHeight := float64(count)
	if surface.laidOut {
		frame := surface.settle(surface.scrollTop)
		viewport.OffsetTop = float64(1 + boolInt(frame.Up))
		viewport.OffsetHeight = float64(frame.Rows)
		clientHeight = float64(frame.Height - 2)
	}
	measurements.Viewport = &viewport
	measurements.Box = anchor.ContentBox{
		BorderTop:    1,
		BorderBottom: 1,
		ClientHeight: clientHeight,
	}

	index := surface.registry.IndexOf(item)
	if index < 0 {
		return measurements
	}
	entry, _ := surface.registry.Get(item)
	labelWidth := float64(ansi.StringWidth(Label(entry)))
	text := anchor.Rect{X: textInset, Width: labelWidth, Height: 1}
	if surface.direction == anchor.RightToLeft {
		text.X = width - textInset - labelWidth
	}
	measurements.ItemText = &text
	measurements.SelectedItem = &anchor.ItemMetrics{
		OffsetTop: float64(index),
		Height:    1,
		First:     index == 0,
		Last:      index == count-1,
	}
	return measurements
}

// ApplyLayout implements [dropdown.Host]. The popup becomes visible.
func (surface *Surface) ApplyLayout(layout anchor.Layout) {
	surface.layout = layout
	surface.laidOut = true
	surface.scrollTop = surface.settle(surface.scrollTop).ScrollTop
}

// Viewport implements [dropdown.Host].
func (surface *Surface) Viewport() dropdown.Viewport {
	count := surface.registry.Len()
	if !surface.laidOut {
		return dropdown.Viewport{ScrollHeight: float64(count), ClientHeight: float64(count)}
	}
	frame := surface.settle(surface.scrollTop)
	return dropdown.Viewport{
		ScrollTop:    float64(frame.ScrollTop),
		ScrollHeight: float64(count),
		ClientHeight: float64(frame.Rows),
	}
}

// SetScrollTop implements [dropdown.Host]. Offsets round to whole
// rows and clamp to the scrollable range.
func (surface *Surface) SetScrollTop(scrollTop float64) {
	if math.IsInf(scrollTop, 1) || scrollTop > float64(surface.registry.Len()) {
		scrollTop = float64(surface.registry.Len())
	}
	surface.scrollTop = surface.settle(int(math.Round(math.Max(0, scrollTop)))).ScrollTop
}

// ScrollBy scrolls the viewport by delta rows (mouse wheel).
func (surface *Surface) ScrollBy(delta int) {
	surface.SetScrollTop(float64(surface.scrollTop + delta))
}

// ScrollIntoView implements [dropdown.Host]. Scrolling can add or
// remove an indicator row, which changes how many rows the viewport
// shows, so the adjustment repeats until the item stays visible.
func (surface *Surface) ScrollIntoView(item collection.Handle) {
	index := surface.registry.IndexOf(item)
	if index < 0 || !surface.laidOut {
		return
	}
	for range 3 {
		frame := surface.settle(surface.scrollTop)
		target := frame.ScrollTop
		switch {
		case index < frame.ScrollTop:
			target = index
		case frame.Rows > 0 && index >= frame.ScrollTop+frame.Rows:
			target = index - frame.Rows + 1
		}
		if target == frame.ScrollTop {
			surface.scrollTop = frame.ScrollTop
			return
		}
		surface.scrollTop = surface.settle(target).ScrollTop
	}
}

// Focus implements [dropdown.Host]. Focusing an item without
// PreventScroll scrolls it into view.
func (surface *Surface) Focus(focus dropdown.Focus) {
	surface.focus = focus
	if focus.Kind == dropdown.FocusItem && !focus.PreventScroll {
		surface.ScrollIntoView(focus.Item)
	}
}

// Focused returns the last focus the controller requested.
func (surface *Surface) Focused() dropdown.Focus { return surface.focus }

// Hide forgets the popup's layout and scroll position. The picker
// calls it when the controller reports the popup closed.
func (surface *Surface) Hide() {
	surface.layout = anchor.Layout{}
	surface.laidOut = false
	surface.scrollTop = 0
}

// Frame returns the popup's geometry. The boolean is false while the
// popup has no layout.
func (surface *Surface) Frame() (Frame, bool) {
	if !surface.laidOut {
		return Frame{}, false
	}
	return surface.settle(surface.scrollTop), true
}

// settle resolves the layout into cells for a proposed scroll offset.
// The popup is as tall as its layout allows but never taller than its
// content (borders, indicator rows, every item). Indicator rows are
// shown when the viewport can scroll that way, and they take rows
// from the viewport, so indicator state and the clamped offset are
// iterated until they agree.
func (surface *Surface) settle(scrollTop int) Frame {
	rect := surface.layout.Rect(surface.window)
	frame := Frame{
		X:     int(math.Round(rect.X)),
		Y:     int(math.Round(rect.Y)),
		Width: int(math.Round(rect.Width)),
	}
	limit := int(math.Round(rect.Height))
	count := surface.registry.Len()

	up, down := scrollTop > 0, false
	for range 4 {
		indicators := boolInt(up) + boolInt(down)
		frame.Height = max(min(limit, count+2+indicators), 0)
		frame.Rows = max(frame.Height-2-indicators, 0)
		frame.ScrollTop = min(max(scrollTop, 0), max(count-frame.Rows, 0))

		nextUp := frame.ScrollTop > 0
		nextDown := frame.ScrollTop < count-frame.Rows
		if nextUp == up && nextDown == down {
			break
		}
		up, down = nextUp, nextDown
	}
	frame.Up, frame.Down = up, down
	return frame
}

// HitTest returns the controller target under the cell (x, y).
func (surface *Surface) HitTest(x, y int) dropdown.Target {
	if frame, ok := surface.Frame(); ok && frame.Contains(x, y) {
		row := y - frame.Y
		switch {
		case row == 0 || row == frame.Height-1:
			return dropdown.Target{Kind: dropdown.TargetContent}
		case frame.Up && row == 1:
			return dropdown.Target{Kind: dropdown.TargetScrollUp}
		case frame.Down && row == frame.Height-2:
			return dropdown.Target{Kind: dropdown.TargetScrollDown}
		case x == frame.X || x == frame.X+frame.Width-1:
			return dropdown.Target{Kind: dropdown.TargetContent}
		}
		index := frame.ScrollTop + y - frame.ViewportY()
		items := surface.registry.List()
		if index >= 0 && index < len(items) {
			return dropdown.ItemTarget(items[index].Handle)
		}
		return dropdown.Target{Kind: dropdown.TargetContent}
	}

	trigger := surface.TriggerRect()
	if trigger.Contains(float64(x)+0.5, float64(y)+0.5) {
		return dropdown.Target{Kind: dropdown.TargetTrigger}
	}
	return dropdown.Target{Kind: dropdown.TargetOutside}
}

// Label returns the text a row shows for item: the host label stored
// in Node when it is a string, otherwise the typeahead text.
func Label(item collection.Item) string {
	if label, ok := item.Node.(string); ok && label != "" {
		return label
	}
	return item.TextValue
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
