// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"unicode/utf8"

	"github.com/bureau-foundation/selectkit/lib/collection"
)

// PointerType is the kind of device behind a pointer event.
type PointerType int

const (
	Mouse PointerType = iota
	Touch
	Pen
)

// String returns the DOM name of the pointer type.
func (pointerType PointerType) String() string {
	switch pointerType {
	case Touch:
		return "touch"
	case Pen:
		return "pen"
	default:
		return "mouse"
	}
}

// TargetKind identifies what a pointer event landed on.
type TargetKind int

const (
	// TargetOutside is anything that is neither the trigger nor part
	// of the popup.
	TargetOutside TargetKind = iota
	TargetTrigger
	// TargetContent is the popup itself, outside any item or
	// indicator.
	TargetContent
	TargetItem
	TargetScrollUp
	TargetScrollDown
)

// String returns a short name for logs.
func (kind TargetKind) String() string {
	switch kind {
	case TargetTrigger:
		return "trigger"
	case TargetContent:
		return "content"
	case TargetItem:
		return "item"
	case TargetScrollUp:
		return "scroll-up"
	case TargetScrollDown:
		return "scroll-down"
	default:
		return "outside"
	}
}

// Target is the hit-test result for a pointer event.
type Target struct {
	Kind TargetKind

	// Item is set when Kind is TargetItem.
	Item collection.Handle
}

// InContent reports whether the target is inside the popup.
func (target Target) InContent() bool {
	switch target.Kind {
	case TargetContent, TargetItem, TargetScrollUp, TargetScrollDown:
		return true
	default:
		return false
	}
}

// ItemTarget returns the target for an item.
func ItemTarget(handle collection.Handle) Target {
	return Target{Kind: TargetItem, Item: handle}
}

// PointerEvent is a pointer-down, move, up, or click. X and Y are page
// coordinates.
type PointerEvent struct {
	Type   PointerType
	Button int
	Ctrl   bool
	X      float64
	Y      float64
	Target Target
}

// Key names a keyboard key the way the DOM does: printable keys are
// the character itself, named keys use their DOM names.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeySpace     Key = " "
	KeyEscape    Key = "Escape"
	KeyTab       Key = "Tab"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
)

// Printable reports whether the key is a single character.
func (key Key) Printable() bool {
	return utf8.RuneCountInString(string(key)) == 1
}

// Rune returns the key's character. Only meaningful when Printable.
func (key Key) Rune() rune {
	character, _ := utf8.DecodeRuneInString(string(key))
	return character
}

// KeyEvent is a key-down.
type KeyEvent struct {
	Key  Key
	Ctrl bool
	Alt  bool
	Meta bool
}

// Modified reports whether a modifier other than shift is held.
func (event KeyEvent) Modified() bool {
	return event.Ctrl || event.Alt || event.Meta
}

// searchable reports whether the key feeds the typeahead matcher.
func (event KeyEvent) searchable() bool {
	return !event.Modified() && event.Key.Printable()
}
