// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"log/slog"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/eventloop"
	"github.com/bureau-foundation/selectkit/lib/typeahead"
)

// gesture is the press that opened the popup: its rounded origin and
// the offset of the latest pointer position from it.
type gesture struct {
	originX, originY float64
	deltaX, deltaY   float64
}

// Controller is one mounted select widget. It is not safe for
// concurrent use: all methods run on the loop's goroutine.
type Controller struct {
	loop     *eventloop.Loop
	registry *collection.Registry
	host     Host
	options  Options
	logger   *slog.Logger

	matcher    *typeahead.Matcher
	positioner *anchor.Positioner

	value string
	open  bool

	// observedOpen is the open state the transition effects last ran
	// for. It differs from isOpen() only between an owner changing a
	// controlled Open and the following sync.
	observedOpen bool

	// session increments on every open so that work deferred by an
	// earlier session can tell it is stale.
	session uint64

	gesture *gesture
	focus   Focus

	// itemHeight is the aligned item's height from the last
	// successful measurement. Auto-scroll steps by it.
	itemHeight float64

	scrollUp, scrollDown bool
	autoScroll           *eventloop.Timer
	autoScrollTarget     TargetKind
}

// New creates a controller for the items in registry. The host
// receives every imperative action. When options request an initially
// open popup, the open effects are queued on loop.
func New(loop *eventloop.Loop, registry *collection.Registry, host Host, options Options) *Controller {
	controller := &Controller{
		loop:       loop,
		registry:   registry,
		host:       host,
		options:    options,
		logger:     options.logger(),
		matcher:    typeahead.NewMatcher(loop, options.TypeaheadDelay),
		positioner: anchor.NewPositioner(options.Mode, options.Popper),
		value:      options.DefaultValue,
		open:       options.DefaultOpen,
		focus:      Focus{Kind: FocusNone},
	}
	controller.sync()
	return controller
}

// Registry returns the item registry.
func (controller *Controller) Registry() *collection.Registry { return controller.registry }

// Value returns the committed value. The empty string means nothing
// is selected.
func (controller *Controller) Value() string {
	if controller.options.Value != nil {
		return *controller.options.Value
	}
	return controller.value
}

// IsOpen reports whether the popup is shown.
func (controller *Controller) IsOpen() bool {
	if controller.options.Open != nil {
		return *controller.options.Open
	}
	return controller.open
}

// State returns Closed, Opening, or Open.
func (controller *Controller) State() State {
	switch {
	case !controller.IsOpen():
		return Closed
	case controller.gesture != nil:
		return Opening
	default:
		return Open
	}
}

// Focused returns the focus the controller last requested.
func (controller *Controller) Focused() Focus { return controller.focus }

// Search returns the typeahead buffer.
func (controller *Controller) Search() string { return controller.matcher.Search() }

// Positioned reports whether the open popup has been laid out.
func (controller *Controller) Positioned() bool { return controller.positioner.Positioned() }

// Layout returns the popup's current layout.
func (controller *Controller) Layout() anchor.Layout { return controller.positioner.Layout() }

// Indicators reports which overflow indicators are active.
func (controller *Controller) Indicators() (up, down bool) {
	return controller.scrollUp, controller.scrollDown
}

// Selected returns the item whose value is the committed value.
func (controller *Controller) Selected() (collection.Item, bool) {
	value := controller.Value()
	if value == "" {
		return collection.Item{}, false
	}
	return controller.registry.Lookup(value)
}

// DisplayText is what the trigger shows: the selected item's text, or
// the placeholder when nothing (known) is selected.
func (controller *Controller) DisplayText() string {
	if item, ok := controller.Selected(); ok {
		return item.TextValue
	}
	return controller.options.Placeholder
}

// SetOpen requests an open state change, as a programmatic toggle.
func (controller *Controller) SetOpen(open bool) {
	if open {
		controller.requestOpen(nil)
		return
	}
	controller.setOpen(false)
}

// Select commits an item's value and closes the popup. Disabled and
// unknown items are ignored.
func (controller *Controller) Select(handle collection.Handle) {
	item, ok := controller.registry.Get(handle)
	if !ok || item.Disabled {
		return
	}
	controller.logger.Debug("select item", "value", item.Value)
	if controller.options.OnSelect != nil {
		controller.options.OnSelect(item.Value)
	}
	controller.setValue(item.Value)
	controller.setOpen(false)
}

// Sync runs the open and close effects after an owner changed a
// controlled Open outside OnOpenChange.
func (controller *Controller) Sync() {
	controller.sync()
}

// Resize closes the popup. The anchored geometry is meaningless after
// the window changes size.
func (controller *Controller) Resize() {
	if controller.IsOpen() {
		controller.logger.Debug("close on resize")
		controller.setOpen(false)
	}
}

// Blur closes the popup when the window loses focus.
func (controller *Controller) Blur() {
	if controller.IsOpen() {
		controller.logger.Debug("close on window blur")
		controller.setOpen(false)
	}
}

// InteractOutside is the host dismissal layer reporting an interaction
// outside the popup.
func (controller *Controller) InteractOutside() {
	if controller.IsOpen() {
		controller.logger.Debug("close on outside interaction")
		controller.setOpen(false)
	}
}

// FocusOutside is the host reporting that focus left the popup.
// Focus moves made by the host's focus trap are not dismissals.
func (controller *Controller) FocusOutside(causedByTrap bool) {
	if causedByTrap || !controller.IsOpen() {
		return
	}
	controller.logger.Debug("close on focus outside")
	controller.setOpen(false)
}

// Unmount cancels the controller's timers. The controller must not be
// used afterwards.
func (controller *Controller) Unmount() {
	controller.matcher.Reset()
	controller.stopAutoScroll()
	controller.session++
}

// requestOpen opens the popup unless the widget is disabled, restarting
// the typeahead search. origin is the trigger press for mouse opens.
func (controller *Controller) requestOpen(origin *PointerEvent) {
	if controller.options.Disabled {
		return
	}
	controller.setOpen(true)
	controller.matcher.Reset()
	if origin != nil && controller.IsOpen() {
		x, y := roundPoint(origin.X, origin.Y)
		controller.gesture = &gesture{originX: x, originY: y}
	}
}

func (controller *Controller) setValue(value string) {
	if value == controller.Value() {
		return
	}
	if controller.options.Value == nil {
		controller.value = value
	}
	if controller.options.OnValueChange != nil {
		controller.options.OnValueChange(value)
	}
}

func (controller *Controller) setOpen(open bool) {
	if open != controller.IsOpen() {
		if controller.options.Open == nil {
			controller.open = open
		}
		if controller.options.OnOpenChange != nil {
			controller.options.OnOpenChange(open)
		}
	}
	controller.sync()
}

func (controller *Controller) sync() {
	open := controller.IsOpen()
	if open == controller.observedOpen {
		return
	}
	controller.observedOpen = open
	if open {
		controller.opened()
	} else {
		controller.closed()
	}
}

func (controller *Controller) opened() {
	controller.session++
	controller.positioner.Reset()
	controller.scrollUp, controller.scrollDown = false, false
	controller.logger.Debug("select opened", "value", controller.Value(), "mode", controller.options.Mode.String())

	session := controller.session
	controller.loop.Post(func() {
		if controller.current(session) {
			controller.position()
		}
	})
}

func (controller *Controller) closed() {
	controller.session++
	controller.gesture = nil
	controller.stopAutoScroll()
	controller.positioner.Reset()
	controller.scrollUp, controller.scrollDown = false, false
	controller.logger.Debug("select closed", "value", controller.Value())
	controller.focusTo(Focus{Kind: FocusTrigger, PreventScroll: true})
}

// current reports whether deferred work from session should still run.
func (controller *Controller) current(session uint64) bool {
	return session == controller.session && controller.IsOpen()
}

// focusTo moves focus. Focusing an item without PreventScroll may
// scroll the viewport, so the scroll state is re-read.
func (controller *Controller) focusTo(focus Focus) {
	controller.focus = focus
	controller.host.Focus(focus)
	if focus.Kind == FocusItem && !focus.PreventScroll && controller.positioner.Positioned() {
		controller.scrolled()
	}
}

// alignItem is the item the popup aligns to: the selected item, else
// the first enabled item.
func (controller *Controller) alignItem() collection.Handle {
	if item, ok := controller.Selected(); ok {
		return item.Handle
	}
	if enabled := controller.registry.Enabled(); len(enabled) > 0 {
		return enabled[0].Handle
	}
	return 0
}

func (controller *Controller) focusedItem() collection.Handle {
	if controller.focus.Kind == FocusItem {
		return controller.focus.Item
	}
	return 0
}
