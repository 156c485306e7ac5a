// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/clock"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/dropdown"
	"github.com/bureau-foundation/selectkit/lib/eventloop"
	"github.com/bureau-foundation/selectkit/lib/typeahead"
)

// ErrNoOptions is returned by NewPicker for an empty option list.
var ErrNoOptions = errors.New("no options to choose from")

// frameInterval paces animation frames at roughly 60 per second.
const frameInterval = time.Second / 60

// Option is one choice offered by the picker.
type Option struct {
	Value string
	Label string

	// TextValue is what typeahead matches against. Defaults to Label.
	TextValue string

	Disabled bool
}

// PickerConfig configures NewPicker.
type PickerConfig struct {
	// Prompt is the header line above the trigger.
	Prompt string

	Options []Option

	// Select configures the controller. OnSelect is wrapped so the
	// picker can record the result; the caller's hook still runs. A
	// zero Margin becomes one cell.
	Select dropdown.Options

	// Theme defaults to DefaultTheme when zero.
	Theme Theme

	// Keys defaults to DefaultKeyMap when nil.
	Keys *KeyMap

	// Clock defaults to the wall clock.
	Clock clock.Clock

	// Persistent keeps the picker running after a selection. The
	// user then finishes with Accept.
	Persistent bool
}

// wakeMsg asks the picker to drain the event loop after work was
// posted from outside Update (a timer firing).
type wakeMsg struct{}

// frameMsg runs the event loop's pending animation frame.
type frameMsg struct{}

// pointerState tracks the pointer between mouse messages.
type pointerState struct {
	pressed     bool
	pressTarget dropdown.Target
	hover       dropdown.Target
}

// pickerState is the part of the picker shared by every copy of the
// value-typed model.
type pickerState struct {
	wakePending    atomic.Bool
	frameScheduled bool
	pointer        pointerState

	result    string
	submitted bool
	done      bool
}

// Picker is a bubbletea model that offers a single choice through the
// anchored select engine: a prompt, the trigger, the popup spliced
// over the view while open, and a status line.
type Picker struct {
	loop       *eventloop.Loop
	registry   *collection.Registry
	surface    *Surface
	controller *dropdown.Controller
	state      *pickerState

	theme  Theme
	keys   KeyMap
	prompt string
	logger *slog.Logger

	width, height int
	sized         bool

	status           string
	statusLevel      slog.Level
	statusGeneration uint64
}

// NewPicker registers the options and creates the controller. Option
// values must be non-empty.
func NewPicker(config PickerConfig) (Picker, error) {
	if len(config.Options) == 0 {
		return Picker{}, ErrNoOptions
	}

	registry := collection.New()
	for index, option := range config.Options {
		text := option.TextValue
		if text == "" {
			text = option.Label
		}
		if _, err := registry.Register(collection.Item{
			Value:     option.Value,
			TextValue: text,
			Disabled:  option.Disabled,
			Node:      option.Label,
		}); err != nil {
			return Picker{}, fmt.Errorf("option %d (%q): %w", index, option.Label, err)
		}
	}

	source := config.Clock
	if source == nil {
		source = clock.Real()
	}
	theme := config.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	keys := DefaultKeyMap
	if config.Keys != nil {
		keys = *config.Keys
	}

	state := &pickerState{}
	options := config.Select
	if options.Margin <= 0 {
		options.Margin = 1
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	onSelect := options.OnSelect
	options.OnSelect = func(value string) {
		state.result = value
		state.submitted = true
		if !config.Persistent {
			state.done = true
		}
		if onSelect != nil {
			onSelect(value)
		}
	}

	loop := eventloop.New(source, nil)
	surface := NewSurface(registry, options.Direction, options.Placeholder)
	picker := Picker{
		loop:       loop,
		registry:   registry,
		surface:    surface,
		controller: dropdown.New(loop, registry, surface, options),
		state:      state,
		theme:      theme,
		keys:       keys,
		prompt:     config.Prompt,
		logger:     options.Logger,
	}
	surface.SetText(picker.triggerText())
	return picker, nil
}

// Attach connects the picker's event loop to program: work posted
// from timer goroutines wakes the program with a message. Wake-ups
// coalesce until the program handles one, and are sent from their own
// goroutine because program.Send blocks until Update receives.
func (picker Picker) Attach(program *tea.Program) {
	state := picker.state
	picker.loop.SetNotify(func() {
		if state.wakePending.CompareAndSwap(false, true) {
			go program.Send(wakeMsg{})
		}
	})
}

// Controller returns the select controller.
func (picker Picker) Controller() *dropdown.Controller { return picker.controller }

// Surface returns the cell geometry the controller drives.
func (picker Picker) Surface() *Surface { return picker.surface }

// Result returns the chosen value and whether the user submitted one.
// A dismissed picker reports false.
func (picker Picker) Result() (string, bool) {
	return picker.state.result, picker.state.submitted
}

// Done reports whether the picker has finished.
func (picker Picker) Done() bool { return picker.state.done }

// Init implements tea.Model.
func (picker Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. After handling the message it drains
// the event loop, so everything the controller deferred has run
// before the next View.
func (picker Picker) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd

	switch message := message.(type) {
	case tea.WindowSizeMsg:
		picker.resize(message.Width, message.Height)

	case tea.BlurMsg:
		picker.controller.Blur()

	case tea.KeyMsg:
		picker.handleKey(message)

	case tea.MouseMsg:
		picker.handleMouse(message)

	case wakeMsg:
		picker.state.wakePending.Store(false)

	case frameMsg:
		picker.state.frameScheduled = false
		picker.loop.Frame()

	case logRecordMsg:
		picker.statusGeneration++
		picker.status = message.Summary
		picker.statusLevel = message.Level
		generation := picker.statusGeneration
		commands = append(commands, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Generation: generation}
		}))

	case logRecordFadeMsg:
		if message.Generation == picker.statusGeneration {
			picker.status = ""
		}
	}

	commands = append(commands, picker.settle())
	return picker, tea.Batch(commands...)
}

// settle drains deferred work, syncs the surface with the controller,
// and schedules the next frame or the exit.
func (picker *Picker) settle() tea.Cmd {
	picker.surface.SetText(picker.triggerText())
	picker.loop.Drain()
	if !picker.controller.IsOpen() {
		picker.surface.Hide()
	}
	picker.surface.SetText(picker.triggerText())

	if picker.state.done {
		picker.controller.Unmount()
		picker.loop.Close()
		value, submitted := picker.Result()
		picker.logger.Debug("picker finished", "value", value, "submitted", submitted)
		return tea.Quit
	}
	if picker.loop.FramePending() && !picker.state.frameScheduled {
		picker.state.frameScheduled = true
		return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
	}
	return nil
}

// resize records the terminal size. The first size only makes the
// surface measurable; a later change is a window resize, which closes
// the popup.
func (picker *Picker) resize(width, height int) {
	changed := picker.sized && (width != picker.width || height != picker.height)
	picker.width, picker.height, picker.sized = width, height, true
	// The status line is not available to the popup.
	picker.surface.SetWindow(width, height-1)
	if changed {
		picker.controller.Resize()
		return
	}
	picker.controller.Remeasure()
}

func (picker *Picker) handleKey(message tea.KeyMsg) {
	open := picker.controller.IsOpen()
	switch {
	case key.Matches(message, picker.keys.Quit):
		picker.state.done = true
		return
	case !open && key.Matches(message, picker.keys.Cancel):
		picker.state.done = true
		return
	case !open && key.Matches(message, picker.keys.Accept):
		if value := picker.controller.Value(); value != "" {
			picker.state.result = value
			picker.state.submitted = true
			picker.state.done = true
		}
		return
	}

	event, ok := TranslateKey(message)
	if !ok {
		return
	}
	picker.controller.KeyDown(event)
}

func (picker *Picker) handleMouse(message tea.MouseMsg) {
	target := picker.surface.HitTest(message.X, message.Y)
	event := dropdown.PointerEvent{
		Type:   dropdown.Mouse,
		Button: mouseButton(message.Button),
		Ctrl:   message.Ctrl,
		X:      float64(message.X),
		Y:      float64(message.Y),
		Target: target,
	}
	pointer := &picker.state.pointer

	switch message.Action {
	case tea.MouseActionPress:
		switch message.Button {
		case tea.MouseButtonWheelUp:
			picker.wheel(target, -1)
			return
		case tea.MouseButtonWheelDown:
			picker.wheel(target, 1)
			return
		}
		picker.hover(target)
		pointer.pressed = true
		pointer.pressTarget = target
		picker.controller.PointerDown(event)

	case tea.MouseActionRelease:
		picker.hover(target)
		picker.controller.PointerUp(event)
		if pointer.pressed && pointer.pressTarget == target {
			picker.controller.Click(event)
		}
		pointer.pressed = false

	case tea.MouseActionMotion:
		picker.hover(target)
		picker.controller.PointerMove(event)
	}
}

// hover reports the pointer leaving the item or indicator it was over.
func (picker *Picker) hover(target dropdown.Target) {
	pointer := &picker.state.pointer
	if pointer.hover == target {
		return
	}
	switch pointer.hover.Kind {
	case dropdown.TargetItem, dropdown.TargetScrollUp, dropdown.TargetScrollDown:
		picker.controller.PointerLeave(pointer.hover)
	}
	pointer.hover = target
}

func (picker *Picker) wheel(target dropdown.Target, delta int) {
	if !target.InContent() {
		return
	}
	if _, ok := picker.surface.Frame(); !ok {
		return
	}
	picker.surface.ScrollBy(delta)
	picker.controller.Scroll()
}

func mouseButton(button tea.MouseButton) int {
	switch button {
	case tea.MouseButtonMiddle:
		return 1
	case tea.MouseButtonRight:
		return 2
	default:
		return 0
	}
}

// triggerText is the selected item's label or the placeholder.
func (picker Picker) triggerText() string {
	if item, ok := picker.controller.Selected(); ok {
		return Label(item)
	}
	return picker.controller.DisplayText()
}

// View implements tea.Model.
func (picker Picker) View() string {
	if !picker.sized || picker.height <= 0 {
		return ""
	}

	lines := make([]string, picker.height)
	set := func(row int, text string) {
		if row >= 0 && row < len(lines) {
			lines[row] = text
		}
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(picker.theme.HeaderForeground)
	set(0, headerStyle.Render(picker.prompt))

	trigger := picker.surface.TriggerRect()
	set(TriggerRow, strings.Repeat(" ", int(trigger.X))+picker.renderTrigger())
	set(picker.height-1, picker.renderStatus())

	view := strings.Join(lines, "\n")
	frame, ok := picker.surface.Frame()
	if !ok || !picker.controller.IsOpen() {
		return view
	}

	items := picker.registry.List()
	view = SpliceOverlay(view, RenderPopup(picker.theme, PopupView{
		Frame:     frame,
		Items:     items,
		Direction: picker.surface.Direction(),
		Value:     picker.controller.Value(),
		Focus:     picker.surface.Focused(),
	}), frame.X, frame.Y)
	return picker.boldSearchPrefix(view, frame, items)
}

// renderTrigger draws " text ▾ " (mirrored right-to-left), padded so
// the trigger keeps its width whatever is selected.
func (picker Picker) renderTrigger() string {
	theme := picker.theme
	style := lipgloss.NewStyle().
		Foreground(theme.TriggerForeground).
		Background(theme.TriggerBackground)
	arrowStyle := style.Foreground(theme.FaintText)
	if picker.controller.IsOpen() {
		arrowStyle = style.Foreground(theme.Accent)
	}

	text := picker.surface.Text()
	textStyle := style
	if _, ok := picker.controller.Selected(); !ok {
		textStyle = style.Foreground(theme.FaintText)
	}
	pad := strings.Repeat(" ", max(picker.surface.LabelWidth()-ansi.StringWidth(text), 0))

	if picker.surface.Direction() == anchor.RightToLeft {
		return style.Render(" ") + arrowStyle.Render("▾") + style.Render(" "+pad) +
			textStyle.Render(text) + style.Render(" ")
	}
	return style.Render(" ") + textStyle.Render(text) + style.Render(pad+" ") +
		arrowStyle.Render("▾") + style.Render(" ")
}

// renderStatus shows the latest log record, or the search buffer and
// key help.
func (picker Picker) renderStatus() string {
	if picker.status != "" {
		color := picker.theme.Warning
		if picker.statusLevel >= slog.LevelError {
			color = picker.theme.Error
		}
		return lipgloss.NewStyle().Foreground(color).Render(ansi.Truncate(picker.status, picker.width, "…"))
	}

	bindings := picker.keys.ClosedHelp()
	if picker.controller.IsOpen() {
		bindings = picker.keys.OpenHelp()
	}
	help := helpLine(bindings)
	if search := picker.controller.Search(); search != "" {
		help = fmt.Sprintf("search: %q · %s", search, help)
	}
	return lipgloss.NewStyle().Foreground(picker.theme.HelpText).Render(ansi.Truncate(help, picker.width, "…"))
}

// boldSearchPrefix emboldens the part of the focused row's label that
// the typeahead buffer matched.
func (picker Picker) boldSearchPrefix(view string, frame Frame, items []collection.Item) string {
	search := typeahead.Normalize(picker.controller.Search())
	focus := picker.surface.Focused()
	if search == "" || focus.Kind != dropdown.FocusItem {
		return view
	}
	index := picker.registry.IndexOf(focus.Item)
	if index < frame.ScrollTop || index >= frame.ScrollTop+frame.Rows {
		return view
	}
	item := items[index]
	label := Label(item)
	if !strings.HasPrefix(strings.ToLower(label), search) {
		return view
	}
	prefix := []rune(label)[:utf8.RuneCountInString(search)]
	start, end := LabelColumns(frame, picker.surface.Direction(), item)
	end = min(end, start+ansi.StringWidth(string(prefix)))
	return OverlayBold(view, frame.ViewportY()+index-frame.ScrollTop, start, end)
}
