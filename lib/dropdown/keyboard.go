// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"slices"

	"github.com/bureau-foundation/selectkit/lib/collection"
)

// KeyDown handles a key press, on the trigger while closed and on the
// popup while open. It returns true when the host should suppress the
// key's default action.
func (controller *Controller) KeyDown(event KeyEvent) bool {
	if controller.IsOpen() {
		return controller.contentKeyDown(event)
	}
	return controller.triggerKeyDown(event)
}

func (controller *Controller) triggerKeyDown(event KeyEvent) bool {
	if controller.options.Disabled {
		return false
	}
	typingAhead := controller.matcher.Searching()
	if event.searchable() {
		controller.triggerSearch(event.Key.Rune())
	}
	if typingAhead && event.Key == KeySpace {
		return false
	}
	switch event.Key {
	case KeySpace, KeyEnter, KeyArrowUp, KeyArrowDown:
		controller.requestOpen(nil)
		return true
	}
	return false
}

// triggerSearch runs typeahead against the committed value and commits
// the match without opening the popup.
func (controller *Controller) triggerSearch(key rune) {
	var current collection.Handle
	if item, ok := controller.Selected(); ok {
		current = item.Handle
	}
	match, ok := controller.matcher.Feed(key, controller.registry.Enabled(), current)
	if ok {
		controller.setValue(match.Value)
	}
}

func (controller *Controller) contentKeyDown(event KeyEvent) bool {
	if event.Key == KeyEscape {
		controller.logger.Debug("close on escape")
		controller.setOpen(false)
		return true
	}

	prevented := false
	if handle := controller.focusedItem(); handle != 0 {
		typingAhead := controller.matcher.Searching()
		if !(typingAhead && event.Key == KeySpace) {
			if event.Key == KeyEnter || event.Key == KeySpace {
				controller.Select(handle)
				if !controller.IsOpen() {
					return true
				}
			}
			prevented = event.Key == KeySpace
		}
	}

	if event.Key == KeyTab {
		prevented = true
	}
	if event.searchable() {
		controller.contentSearch(event.Key.Rune())
	}
	switch event.Key {
	case KeyArrowUp, KeyArrowDown, KeyHome, KeyEnd:
		controller.navigate(event.Key)
		prevented = true
	}
	return prevented
}

// contentSearch runs typeahead from the focused item. The matched item
// is focused after the current update settles.
func (controller *Controller) contentSearch(key rune) {
	match, ok := controller.matcher.Feed(key, controller.registry.Enabled(), controller.focusedItem())
	if !ok {
		return
	}
	session := controller.session
	controller.loop.Post(func() {
		if controller.current(session) {
			controller.focusTo(Focus{Kind: FocusItem, Item: match.Handle})
		}
	})
}

// navigate moves focus for the arrow, Home, and End keys. Candidates
// are the enabled items in order, reversed for ArrowUp and End; the
// arrows only consider items past the focused one.
func (controller *Controller) navigate(key Key) {
	enabled := controller.registry.Enabled()
	candidates := make([]collection.Handle, 0, len(enabled))
	for _, item := range enabled {
		candidates = append(candidates, item.Handle)
	}
	if key == KeyArrowUp || key == KeyEnd {
		slices.Reverse(candidates)
	}
	if key == KeyArrowUp || key == KeyArrowDown {
		index := slices.Index(candidates, controller.focusedItem())
		candidates = candidates[index+1:]
	}

	session := controller.session
	controller.loop.Post(func() {
		if controller.current(session) {
			controller.focusFirst(candidates)
		}
	})
}

// focusFirst focuses the first candidate that is still mounted and
// scrolls it into view. The list's first item scrolls the viewport to
// the top and its last item to the bottom, so padding around them is
// revealed. Reaching the already-focused item stops the walk.
func (controller *Controller) focusFirst(candidates []collection.Handle) {
	items := controller.registry.List()
	var first, last collection.Handle
	if len(items) > 0 {
		first, last = items[0].Handle, items[len(items)-1].Handle
	}
	previous := controller.focusedItem()

	for _, candidate := range candidates {
		if previous != 0 && candidate == previous {
			return
		}
		if _, ok := controller.registry.Get(candidate); !ok {
			continue
		}
		controller.host.ScrollIntoView(candidate)
		if candidate == first {
			controller.host.SetScrollTop(0)
		}
		if candidate == last {
			controller.host.SetScrollTop(controller.host.Viewport().ScrollHeight)
		}
		controller.focusTo(Focus{Kind: FocusItem, Item: candidate})
		return
	}
}
