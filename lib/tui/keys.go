// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/selectkit/lib/dropdown"
)

// KeyMap defines the picker's own key bindings. Everything else is
// translated and handed to the select controller, which owns
// navigation, selection, and typeahead.
type KeyMap struct {
	// Quit abandons the picker from any state.
	Quit key.Binding

	// Cancel abandons the picker while the popup is closed. While it
	// is open the same key closes the popup instead.
	Cancel key.Binding

	// Accept finishes with the committed value while the popup is
	// closed (after trigger typeahead, for example).
	Accept key.Binding

	// Help-only entries describing controller gestures.
	Open     key.Binding
	Navigate key.Binding
	Choose   key.Binding
	Close    key.Binding
	Search   key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Accept: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "accept"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", " ", "up", "down"),
		key.WithHelp("enter", "open"),
	),
	Navigate: key.NewBinding(
		key.WithKeys("up", "down", "home", "end"),
		key.WithHelp("↑/↓", "move"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Search: key.NewBinding(
		key.WithHelp("a-z", "jump"),
	),
}

// ClosedHelp returns the bindings shown in the status line while the
// popup is closed.
func (keys KeyMap) ClosedHelp() []key.Binding {
	return []key.Binding{keys.Open, keys.Search, keys.Accept, keys.Cancel, keys.Quit}
}

// OpenHelp returns the bindings shown while the popup is open.
func (keys KeyMap) OpenHelp() []key.Binding {
	return []key.Binding{keys.Navigate, keys.Choose, keys.Search, keys.Close, keys.Quit}
}

// helpLine renders bindings as "key desc · key desc".
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " · ")
}

// TranslateKey converts a bubbletea key message into the controller's
// DOM-style key event. Keys the controller has no use for return
// false.
func TranslateKey(message tea.KeyMsg) (dropdown.KeyEvent, bool) {
	event := dropdown.KeyEvent{Alt: message.Alt}
	switch message.Type {
	case tea.KeyEnter:
		event.Key = dropdown.KeyEnter
	case tea.KeySpace:
		event.Key = dropdown.KeySpace
	case tea.KeyEsc:
		event.Key = dropdown.KeyEscape
	case tea.KeyTab, tea.KeyShiftTab:
		event.Key = dropdown.KeyTab
	case tea.KeyUp:
		event.Key = dropdown.KeyArrowUp
	case tea.KeyDown:
		event.Key = dropdown.KeyArrowDown
	case tea.KeyHome:
		event.Key = dropdown.KeyHome
	case tea.KeyEnd:
		event.Key = dropdown.KeyEnd
	case tea.KeyRunes:
		if len(message.Runes) != 1 {
			return dropdown.KeyEvent{}, false
		}
		event.Key = dropdown.Key(string(message.Runes))
	default:
		// Control chords reach the controller as modified keys so
		// they never feed typeahead.
		name, ok := strings.CutPrefix(message.String(), "ctrl+")
		if !ok || utf8.RuneCountInString(name) != 1 {
			return dropdown.KeyEvent{}, false
		}
		event.Key = dropdown.Key(name)
		event.Ctrl = true
	}
	return event, true
}
