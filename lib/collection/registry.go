// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyValue is returned when registering an item without a value.
// The empty string is reserved to mean "nothing selected" and must not
// match any item.
var ErrEmptyValue = errors.New("collection: item value must not be empty")

// ErrUnknownHandle is returned for operations on a handle that is not
// (or is no longer) registered.
var ErrUnknownHandle = errors.New("collection: unknown item handle")

// Handle identifies one registration. Handles are never reused within
// a registry; the zero Handle is never issued.
type Handle uint64

// Item is the metadata the engine needs about one mounted item.
type Item struct {
	// Handle is assigned by the registry on registration.
	Handle Handle

	// Value is the stable, unique identifier committed on selection.
	Value string

	// TextValue is the text typeahead matches against: the item's
	// rendered text, or an explicit override.
	TextValue string

	// Disabled items are skipped by navigation and search and cannot
	// be selected.
	Disabled bool

	// Node is the host's reference for this item (its element,
	// widget, or row). The registry never dereferences it.
	Node any
}

// Registry is an ordered set of mounted items. The zero value is not
// usable; use New.
type Registry struct {
	mu      sync.RWMutex
	items   []Item
	nextID  Handle
	byValue map[string]Handle
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byValue: make(map[string]Handle)}
}

// Register appends item at the end of the order and returns its
// handle. Any Handle set on the argument is ignored.
func (registry *Registry) Register(item Item) (Handle, error) {
	return registry.insert(item, 0)
}

// RegisterBefore inserts item immediately ahead of the mounted item
// identified by anchor, for hosts whose mount order differs from
// document order.
func (registry *Registry) RegisterBefore(anchor Handle, item Item) (Handle, error) {
	return registry.insert(item, anchor)
}

// Unregister removes the item. Unregistering an unknown handle is a
// no-op that returns ErrUnknownHandle.
func (registry *Registry) Unregister(handle Handle) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	index := registry.indexLocked(handle)
	if index < 0 {
		return fmt.Errorf("unregister %d: %w", handle, ErrUnknownHandle)
	}
	removed := registry.items[index]
	registry.items = append(registry.items[:index], registry.items[index+1:]...)

	if registry.byValue[removed.Value] == handle {
		delete(registry.byValue, removed.Value)
		// Another mounted item may share the value; the most recently
		// registered survivor takes over lookups.
		var latest Handle
		for _, item := range registry.items {
			if item.Value == removed.Value && item.Handle > latest {
				latest = item.Handle
			}
		}
		if latest != 0 {
			registry.byValue[removed.Value] = latest
		}
	}
	return nil
}

// Update applies mutate to the registered item in place. The handle
// and value are fixed for the life of a registration; changes to them
// are discarded.
func (registry *Registry) Update(handle Handle, mutate func(*Item)) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	index := registry.indexLocked(handle)
	if index < 0 {
		return fmt.Errorf("update %d: %w", handle, ErrUnknownHandle)
	}
	item := registry.items[index]
	mutate(&item)
	item.Handle = registry.items[index].Handle
	item.Value = registry.items[index].Value
	registry.items[index] = item
	return nil
}

// List returns the mounted items in document order. The slice is a
// copy; later registry mutations do not affect it.
func (registry *Registry) List() []Item {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return append([]Item(nil), registry.items...)
}

// Enabled returns the mounted items that are not disabled, in document
// order.
func (registry *Registry) Enabled() []Item {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	enabled := make([]Item, 0, len(registry.items))
	for _, item := range registry.items {
		if !item.Disabled {
			enabled = append(enabled, item)
		}
	}
	return enabled
}

// Get returns the item for handle.
func (registry *Registry) Get(handle Handle) (Item, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	index := registry.indexLocked(handle)
	if index < 0 {
		return Item{}, false
	}
	return registry.items[index], true
}

// Lookup returns the item registered for value. When several mounted
// items share a value (a caller defect), the most recently registered
// one wins. The empty value never matches.
func (registry *Registry) Lookup(value string) (Item, bool) {
	if value == "" {
		return Item{}, false
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	handle, exists := registry.byValue[value]
	if !exists {
		return Item{}, false
	}
	index := registry.indexLocked(handle)
	if index < 0 {
		return Item{}, false
	}
	return registry.items[index], true
}

// IndexOf returns the position of handle in document order, or -1.
func (registry *Registry) IndexOf(handle Handle) int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.indexLocked(handle)
}

// Len returns the number of mounted items.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.items)
}

func (registry *Registry) insert(item Item, anchor Handle) (Handle, error) {
	if item.Value == "" {
		return 0, ErrEmptyValue
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	position := len(registry.items)
	if anchor != 0 {
		position = registry.indexLocked(anchor)
		if position < 0 {
			return 0, fmt.Errorf("register before %d: %w", anchor, ErrUnknownHandle)
		}
	}

	registry.nextID++
	item.Handle = registry.nextID

	registry.items = append(registry.items, Item{})
	copy(registry.items[position+1:], registry.items[position:])
	registry.items[position] = item
	registry.byValue[item.Value] = item.Handle
	return item.Handle, nil
}

func (registry *Registry) indexLocked(handle Handle) int {
	for index, item := range registry.items {
		if item.Handle == handle {
			return index
		}
	}
	return -1
}
