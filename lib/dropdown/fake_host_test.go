// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/clock"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/eventloop"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	testItemHeight   = 20
	testClientHeight = 100
)

// fakeHost lays items out in a single column of fixed height inside a
// 100-unit viewport, in a 400x300 window with the trigger's center at
// y=150.
type fakeHost struct {
	registry *collection.Registry

	unmeasurable bool
	scrollTop    float64

	layouts []anchor.Layout
	focuses []Focus
}

func (host *fakeHost) Measure(item collection.Handle) anchor.Measurements {
	measurements := anchor.Measurements{
		Window: anchor.Size{Width: 400, Height: 300},
	}
	if host.unmeasurable {
		return measurements
	}
	index := host.registry.IndexOf(item)
	if index < 0 {
		return measurements
	}
	measurements.Trigger = &anchor.Rect{X: 50, Y: 140, Width: 120, Height: 20}
	measurements.ValueNode = &anchor.Rect{X: 54, Y: 142, Width: 100, Height: 16}
	measurements.Content = &anchor.Rect{Width: 120, Height: testClientHeight}
	measurements.ItemText = &anchor.Rect{X: 4, Width: 80, Height: 16}
	measurements.Viewport = &anchor.ViewportMetrics{
		OffsetHeight: testClientHeight,
		ScrollHeight: host.scrollHeight(),
	}
	measurements.SelectedItem = &anchor.ItemMetrics{
		OffsetTop: float64(index * testItemHeight),
		Height:    testItemHeight,
		First:     index == 0,
		Last:      index == host.registry.Len()-1,
	}
	measurements.Box = anchor.ContentBox{ClientHeight: testClientHeight}
	return measurements
}

func (host *fakeHost) ApplyLayout(layout anchor.Layout) {
	host.layouts = append(host.layouts, layout)
}

func (host *fakeHost) Viewport() Viewport {
	return Viewport{
		ScrollTop:    host.scrollTop,
		ScrollHeight: host.scrollHeight(),
		ClientHeight: testClientHeight,
	}
}

func (host *fakeHost) SetScrollTop(scrollTop float64) {
	host.scrollTop = math.Max(0, math.Min(scrollTop, host.Viewport().MaxScrollTop()))
}

func (host *fakeHost) ScrollIntoView(item collection.Handle) {
	index := host.registry.IndexOf(item)
	if index < 0 {
		return
	}
	top := float64(index * testItemHeight)
	bottom := top + testItemHeight
	switch {
	case top < host.scrollTop:
		host.scrollTop = top
	case bottom > host.scrollTop+testClientHeight:
		host.scrollTop = bottom - testClientHeight
	}
}

func (host *fakeHost) Focus(focus Focus) {
	host.focuses = append(host.focuses, focus)
}

func (host *fakeHost) scrollHeight() float64 {
	return float64(host.registry.Len() * testItemHeight)
}

func (host *fakeHost) lastFocus() Focus {
	if len(host.focuses) == 0 {
		return Focus{}
	}
	return host.focuses[len(host.focuses)-1]
}

// harness is a controller over ten fruits with a fake host and clock.
type harness struct {
	t          *testing.T
	clock      *clock.FakeClock
	loop       *eventloop.Loop
	registry   *collection.Registry
	host       *fakeHost
	controller *Controller
	handles    map[string]collection.Handle

	valueChanges []string
	openChanges  []bool
}

var fruitNames = []string{
	"apple", "banana", "blueberry", "cherry", "date",
	"elderberry", "fig", "grape", "kiwi", "lemon",
}

func newHarness(t *testing.T, options Options, disabled ...string) *harness {
	t.Helper()
	fake := clock.Fake(epoch)
	loop := eventloop.New(fake, nil)
	registry := collection.New()
	h := &harness{
		t:        t,
		clock:    fake,
		loop:     loop,
		registry: registry,
		host:     &fakeHost{registry: registry},
		handles:  make(map[string]collection.Handle),
	}
	for _, name := range fruitNames {
		handle, err := registry.Register(collection.Item{
			Value:     name,
			TextValue: name,
			Disabled:  slices.Contains(disabled, name),
		})
		if err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
		h.handles[name] = handle
	}

	onValue, onOpen := options.OnValueChange, options.OnOpenChange
	options.OnValueChange = func(value string) {
		h.valueChanges = append(h.valueChanges, value)
		if onValue != nil {
			onValue(value)
		}
	}
	options.OnOpenChange = func(open bool) {
		h.openChanges = append(h.openChanges, open)
		if onOpen != nil {
			onOpen(open)
		}
	}
	h.controller = New(loop, registry, h.host, options)
	return h
}

// openWithKeyboard opens the popup with Enter and drains the loop.
func (h *harness) openWithKeyboard() {
	h.t.Helper()
	h.controller.KeyDown(KeyEvent{Key: KeyEnter})
	h.loop.Drain()
	if !h.controller.IsOpen() {
		h.t.Fatal("popup did not open")
	}
}

func (h *harness) item(name string) Target {
	return ItemTarget(h.handles[name])
}

func (h *harness) requireFocusedItem(name string) {
	h.t.Helper()
	focus := h.controller.Focused()
	if focus.Kind != FocusItem || focus.Item != h.handles[name] {
		h.t.Fatalf("focus = %+v, want item %s (handle %d)", focus, name, h.handles[name])
	}
	if last := h.host.lastFocus(); last != focus {
		h.t.Fatalf("host focus %+v differs from controller focus %+v", last, focus)
	}
}

func mouseAt(x, y float64, target Target) PointerEvent {
	return PointerEvent{Type: Mouse, X: x, Y: y, Target: target}
}

func press(name string) KeyEvent {
	return KeyEvent{Key: Key(name)}
}
