// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/clock"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/dropdown"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func fruitOptions() []Option {
	options := make([]Option, 0, len(fruitNames))
	for _, name := range fruitNames {
		options = append(options, Option{Value: name, Label: name})
	}
	return options
}

func newTestPicker(t *testing.T, config PickerConfig) (Picker, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(epoch)
	config.Clock = fake
	if config.Options == nil {
		config.Options = fruitOptions()
	}
	if config.Select.Placeholder == "" {
		config.Select.Placeholder = testPlaceholder
	}
	picker, err := NewPicker(config)
	if err != nil {
		t.Fatalf("NewPicker: %v", err)
	}
	return picker, fake
}

func update(t *testing.T, picker Picker, message tea.Msg) Picker {
	t.Helper()
	updated, _ := picker.Update(message)
	return updated.(Picker)
}

func sized(t *testing.T, picker Picker, width, height int) Picker {
	t.Helper()
	return update(t, picker, tea.WindowSizeMsg{Width: width, Height: height})
}

func keyPress(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func runeKey(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func requireFocused(t *testing.T, picker Picker, name string) {
	t.Helper()
	focus := picker.Surface().Focused()
	item, ok := picker.registry.Get(focus.Item)
	if focus.Kind != dropdown.FocusItem || !ok || item.Value != name {
		t.Fatalf("focus = %+v (%q), want item %s", focus, item.Value, name)
	}
}

func plainView(picker Picker) string {
	return ansi.Strip(picker.View())
}

func TestNewPickerRejectsBadOptions(t *testing.T) {
	if _, err := NewPicker(PickerConfig{}); !errors.Is(err, ErrNoOptions) {
		t.Errorf("empty options: err = %v, want ErrNoOptions", err)
	}
	_, err := NewPicker(PickerConfig{Options: []Option{{Value: "", Label: "blank"}}})
	if !errors.Is(err, collection.ErrEmptyValue) {
		t.Errorf("empty value: err = %v, want ErrEmptyValue", err)
	}
}

func TestPickerKeyboardChoice(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{Prompt: "Favorite fruit?"})
	picker = sized(t, picker, 80, 24)

	view := plainView(picker)
	if !strings.Contains(view, "Favorite fruit?") || !strings.Contains(view, testPlaceholder) {
		t.Fatalf("closed view lacks prompt or placeholder:\n%s", view)
	}

	picker = update(t, picker, keyPress(tea.KeyEnter))
	if !picker.Controller().IsOpen() {
		t.Fatal("enter did not open the popup")
	}
	if _, ok := picker.Surface().Frame(); !ok {
		t.Fatal("popup opened without a layout")
	}
	requireFocused(t, picker, "apple")
	if view := plainView(picker); !strings.Contains(view, "elderberry") {
		t.Errorf("open view lacks items:\n%s", view)
	}

	picker = update(t, picker, keyPress(tea.KeyDown))
	requireFocused(t, picker, "banana")

	picker = update(t, picker, keyPress(tea.KeyEnter))
	value, submitted := picker.Result()
	if value != "banana" || !submitted || !picker.Done() {
		t.Errorf("Result() = %q, %v; Done() = %v", value, submitted, picker.Done())
	}
}

func TestPickerEscapeClosesThenCancels(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	picker = update(t, picker, keyPress(tea.KeyEsc))
	if picker.Controller().IsOpen() || picker.Done() {
		t.Fatalf("first escape: open=%v done=%v, want closed and running", picker.Controller().IsOpen(), picker.Done())
	}
	if _, ok := picker.Surface().Frame(); ok {
		t.Error("closed popup still has a frame")
	}

	picker = update(t, picker, keyPress(tea.KeyEsc))
	if _, submitted := picker.Result(); submitted || !picker.Done() {
		t.Errorf("second escape: submitted=%v done=%v", submitted, picker.Done())
	}
}

func TestPickerQuitFromOpenPopup(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))
	picker = update(t, picker, keyPress(tea.KeyCtrlC))
	if !picker.Done() {
		t.Fatal("ctrl+c did not finish the picker")
	}
	if _, submitted := picker.Result(); submitted {
		t.Error("ctrl+c submitted a value")
	}
}

func TestPickerTriggerTypeaheadThenAccept(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)

	picker = update(t, picker, runeKey('c'))
	if picker.Controller().IsOpen() {
		t.Fatal("typeahead on the trigger opened the popup")
	}
	if got := picker.Controller().Value(); got != "cherry" {
		t.Fatalf("Value() = %q, want cherry", got)
	}
	if view := plainView(picker); !strings.Contains(view, "cherry") {
		t.Errorf("trigger does not show the committed value:\n%s", view)
	}

	picker = update(t, picker, keyPress(tea.KeyCtrlS))
	if value, submitted := picker.Result(); value != "cherry" || !submitted || !picker.Done() {
		t.Errorf("Result() = %q, %v; Done() = %v", value, submitted, picker.Done())
	}
}

func TestPickerAcceptWithoutValueIsIgnored(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyCtrlS))
	if picker.Done() {
		t.Fatal("accept with nothing selected finished the picker")
	}
}

func TestPickerClickReleaseDoesNotSelect(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)

	picker = update(t, picker, mouse(tea.MouseActionPress, 6, TriggerRow))
	if picker.Controller().State() != dropdown.Opening {
		t.Fatalf("State() = %v, want opening", picker.Controller().State())
	}
	// The popup now covers the trigger with apple under the pointer;
	// releasing in place must not choose it.
	picker = update(t, picker, mouse(tea.MouseActionRelease, 6, TriggerRow))
	if picker.Controller().State() != dropdown.Open {
		t.Fatalf("State() after release = %v, want open", picker.Controller().State())
	}
	if picker.Done() || picker.Controller().Value() != "" {
		t.Fatal("the opening click selected an item")
	}

	frame, _ := picker.Surface().Frame()
	bananaRow := frame.ViewportY() + 1 - frame.ScrollTop
	picker = update(t, picker, mouse(tea.MouseActionPress, 6, bananaRow))
	picker = update(t, picker, mouse(tea.MouseActionRelease, 6, bananaRow))
	if value, submitted := picker.Result(); value != "banana" || !submitted {
		t.Errorf("Result() = %q, %v, want banana", value, submitted)
	}
}

func TestPickerDragSelect(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)

	picker = update(t, picker, mouse(tea.MouseActionPress, 6, TriggerRow))
	// Apple sits on the trigger row, so date is four rows below it on
	// row 6. Eleven columns to the right is past the drag threshold.
	picker = update(t, picker, mouse(tea.MouseActionMotion, 17, 6))
	picker = update(t, picker, mouse(tea.MouseActionRelease, 17, 6))
	if value, submitted := picker.Result(); value != "date" || !submitted {
		t.Errorf("Result() = %q, %v, want date", value, submitted)
	}
}

func TestPickerHoverFocusesItem(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	picker = update(t, picker, mouse(tea.MouseActionMotion, 6, 4))
	requireFocused(t, picker, "blueberry")

	picker = update(t, picker, mouse(tea.MouseActionMotion, 60, 4))
	if got := picker.Surface().Focused().Kind; got != dropdown.FocusContent {
		t.Errorf("focus after leaving the item = %v, want content", got)
	}
}

func TestPickerPressOutsideDismisses(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))
	picker = update(t, picker, mouse(tea.MouseActionPress, 60, 15))
	if picker.Controller().IsOpen() {
		t.Fatal("press outside left the popup open")
	}
	if picker.Done() {
		t.Error("dismissing the popup finished the picker")
	}
}

func TestPickerResizeCloses(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	picker = sized(t, picker, 80, 24)
	if !picker.Controller().IsOpen() {
		t.Fatal("an unchanged size closed the popup")
	}
	picker = sized(t, picker, 100, 30)
	if picker.Controller().IsOpen() {
		t.Fatal("resize left the popup open")
	}
}

func TestPickerBlurCloses(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))
	picker = update(t, picker, tea.BlurMsg{})
	if picker.Controller().IsOpen() {
		t.Fatal("blur left the popup open")
	}
}

func TestPickerOpensWhenFirstSized(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{Select: dropdown.Options{DefaultOpen: true, DefaultValue: "fig"}})
	picker = update(t, picker, wakeMsg{})
	if picker.Controller().Positioned() {
		t.Fatal("positioned before the terminal size was known")
	}

	picker = sized(t, picker, 80, 24)
	if !picker.Controller().Positioned() {
		t.Fatal("not positioned after the first size")
	}
	requireFocused(t, picker, "fig")
}

func TestPickerWheelScrolls(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 10)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	frame, _ := picker.Surface().Frame()
	if frame.ScrollTop != 0 || !frame.Down {
		t.Fatalf("frame = %+v, want top of an overflowing list", frame)
	}
	picker = update(t, picker, tea.MouseMsg{X: 6, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	frame, _ = picker.Surface().Frame()
	if frame.ScrollTop != 1 || !frame.Up {
		t.Errorf("after wheel: frame = %+v, want ScrollTop 1 with up indicator", frame)
	}
	if up, _ := picker.Controller().Indicators(); !up {
		t.Error("controller did not see the scroll")
	}

	picker = update(t, picker, tea.MouseMsg{X: 60, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if frame, _ = picker.Surface().Frame(); frame.ScrollTop != 1 {
		t.Errorf("wheel outside the popup scrolled to %d", frame.ScrollTop)
	}
}

func TestPickerIndicatorAutoScroll(t *testing.T) {
	picker, fake := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 10)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	frame, _ := picker.Surface().Frame()
	downRow := frame.Y + frame.Height - 2
	picker = update(t, picker, mouse(tea.MouseActionMotion, 6, downRow))
	if !picker.Controller().AutoScrolling() {
		t.Fatal("hovering the down indicator did not start auto-scroll")
	}

	fake.Advance(dropdown.AutoScrollInterval)
	picker = update(t, picker, wakeMsg{})
	fake.Advance(dropdown.AutoScrollInterval)
	picker = update(t, picker, wakeMsg{})
	if frame, _ = picker.Surface().Frame(); frame.ScrollTop != 2 {
		t.Errorf("ScrollTop after two intervals = %d, want 2", frame.ScrollTop)
	}

	picker = update(t, picker, mouse(tea.MouseActionMotion, 60, downRow))
	if picker.Controller().AutoScrolling() {
		t.Fatal("leaving the indicator did not stop auto-scroll")
	}
	fake.Advance(time.Second)
	picker = update(t, picker, wakeMsg{})
	if frame, _ = picker.Surface().Frame(); frame.ScrollTop != 2 {
		t.Errorf("ScrollTop moved after auto-scroll stopped: %d", frame.ScrollTop)
	}
}

func TestPickerSchedulesFrames(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)

	updated, command := picker.Update(keyPress(tea.KeyEnter))
	picker = updated.(Picker)
	if command == nil {
		t.Fatal("opening did not schedule a frame")
	}
	if !picker.loop.FramePending() {
		t.Fatal("no frame requested after positioning")
	}
	picker = update(t, picker, frameMsg{})
	if picker.loop.FramePending() {
		t.Error("frame still pending after frameMsg")
	}
}

func TestPickerStatusLine(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{})
	picker = sized(t, picker, 80, 24)

	if view := plainView(picker); !strings.Contains(view, "enter open") {
		t.Errorf("closed status line lacks help:\n%s", view)
	}

	picker = update(t, picker, logRecordMsg{Summary: "duplicate value (value=fig)", Level: slog.LevelWarn})
	picker = update(t, picker, logRecordMsg{Summary: "second warning", Level: slog.LevelWarn})
	if view := plainView(picker); !strings.Contains(view, "second warning") {
		t.Fatalf("status line lacks log record:\n%s", view)
	}

	picker = update(t, picker, logRecordFadeMsg{Generation: 1})
	if view := plainView(picker); !strings.Contains(view, "second warning") {
		t.Error("stale fade cleared the newer record")
	}
	picker = update(t, picker, logRecordFadeMsg{Generation: 2})
	if view := plainView(picker); strings.Contains(view, "second warning") {
		t.Error("fade did not clear the record")
	}
}

func TestPickerPersistentKeepsRunning(t *testing.T) {
	var selected []string
	picker, _ := newTestPicker(t, PickerConfig{
		Persistent: true,
		Select: dropdown.Options{
			OnSelect: func(value string) { selected = append(selected, value) },
		},
	})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))
	picker = update(t, picker, keyPress(tea.KeyEnter))
	if picker.Done() {
		t.Fatal("persistent picker finished on selection")
	}
	if len(selected) != 1 || selected[0] != "apple" {
		t.Errorf("OnSelect calls = %v, want [apple]", selected)
	}

	picker = update(t, picker, keyPress(tea.KeyCtrlS))
	if value, submitted := picker.Result(); value != "apple" || !submitted || !picker.Done() {
		t.Errorf("Result() = %q, %v; Done() = %v", value, submitted, picker.Done())
	}
}

func TestPickerRightToLeft(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{Select: dropdown.Options{Direction: anchor.RightToLeft}})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	frame, ok := picker.Surface().Frame()
	if !ok {
		t.Fatal("no popup")
	}
	if frame.X+frame.Width != 79 {
		t.Errorf("popup right edge = %d, want 79 (one-cell margin)", frame.X+frame.Width)
	}
	line := strings.Split(plainView(picker), "\n")[TriggerRow]
	if !strings.HasSuffix(strings.TrimRight(line, " "), "│") {
		t.Errorf("trigger row does not end at the popup border: %q", line)
	}
}

func TestPickerPopperDocksBelowTrigger(t *testing.T) {
	picker, _ := newTestPicker(t, PickerConfig{Select: dropdown.Options{Mode: anchor.Popper}})
	picker = sized(t, picker, 80, 24)
	picker = update(t, picker, keyPress(tea.KeyEnter))

	frame, ok := picker.Surface().Frame()
	if !ok {
		t.Fatal("no popup after opening in popper mode")
	}
	want := Frame{X: 4, Y: TriggerRow + 1, Width: 19, Height: 12, Rows: 10}
	if frame != want {
		t.Fatalf("frame = %+v, want %+v", frame, want)
	}
	requireFocused(t, picker, "apple")

	line := strings.Split(plainView(picker), "\n")[TriggerRow]
	if !strings.Contains(line, testPlaceholder) {
		t.Errorf("popup covered the trigger row: %q", line)
	}

	picker = update(t, picker, keyPress(tea.KeyDown))
	requireFocused(t, picker, "banana")
	picker = update(t, picker, keyPress(tea.KeyEnter))
	if value, submitted := picker.Result(); value != "banana" || !submitted {
		t.Errorf("Result() = %q, %v, want banana", value, submitted)
	}
}
