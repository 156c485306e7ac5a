// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/selectkit/lib/anchor"
	"github.com/bureau-foundation/selectkit/lib/collection"
	"github.com/bureau-foundation/selectkit/lib/dropdown"
)

// PopupView is the state RenderPopup draws.
type PopupView struct {
	Frame     Frame
	Items     []collection.Item
	Direction anchor.Direction

	// Value is the committed value; its row carries a check mark.
	Value string

	// Focus highlights a row when it names an item.
	Focus dropdown.Focus
}

// RenderPopup produces the popup lines for overlay splicing, each
// exactly Frame.Width cells wide: a rounded border, the overflow
// indicator rows, and one row per visible item with a scrollbar
// column on the trailing side.
func RenderPopup(theme Theme, view PopupView) []string {
	frame := view.Frame
	if frame.Width < 2 || frame.Height < 2 {
		return nil
	}
	inner := frame.Width - 2

	borderStyle := lipgloss.NewStyle().
		Foreground(theme.BorderColor).
		Background(theme.PopupBackground)
	indicatorStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.PopupBackground)

	lines := make([]string, 0, frame.Height)
	lines = append(lines, borderStyle.Render("╭"+strings.Repeat("─", inner)+"╮"))
	if frame.Up {
		lines = append(lines, borderStyle.Render("│")+indicatorStyle.Render(center("▲", inner))+borderStyle.Render("│"))
	}

	scrollbar := RenderScrollbar(theme, frame.Rows, len(view.Items), frame.Rows, frame.ScrollTop, true)
	for row := range frame.Rows {
		index := frame.ScrollTop + row
		var body string
		if index < len(view.Items) {
			body = renderRow(theme, view, view.Items[index], inner-3)
		} else {
			body = PadOverlayLine("", inner-3, lipgloss.NewStyle().Background(theme.PopupBackground))
		}
		if view.Direction == anchor.RightToLeft {
			lines = append(lines, borderStyle.Render("│")+scrollbar[row]+body+borderStyle.Render("│"))
		} else {
			lines = append(lines, borderStyle.Render("│")+body+scrollbar[row]+borderStyle.Render("│"))
		}
	}

	if frame.Down {
		lines = append(lines, borderStyle.Render("│")+indicatorStyle.Render(center("▼", inner))+borderStyle.Render("│"))
	}
	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return lines
}

// renderRow draws one item between the border and the scrollbar:
// marker and label, padded to contentWidth plus a cell on each side.
func renderRow(theme Theme, view PopupView, item collection.Item, contentWidth int) string {
	focused := view.Focus.Kind == dropdown.FocusItem && view.Focus.Item == item.Handle

	rowStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Background(theme.PopupBackground)
	switch {
	case focused:
		rowStyle = rowStyle.
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground)
	case item.Disabled:
		rowStyle = rowStyle.Foreground(theme.DisabledText)
	}

	marker := rowStyle.Render(" ")
	if item.Value == view.Value {
		marker = rowStyle.Foreground(theme.Accent).Render("✓")
	}

	label := Label(item)
	if labelRoom := contentWidth - 2; ansi.StringWidth(label) > labelRoom {
		label = ansi.Truncate(label, max(labelRoom, 0), "…")
	}

	var content string
	if view.Direction == anchor.RightToLeft {
		pad := max(contentWidth-ansi.StringWidth(label)-2, 0)
		content = rowStyle.Render(strings.Repeat(" ", pad)+label+" ") + marker
	} else {
		content = marker + rowStyle.Render(" "+label)
	}
	return PadOverlayLine(content, contentWidth, rowStyle)
}

// LabelColumns returns the screen columns [start, end) a row's label
// occupies in the rendered popup.
func LabelColumns(frame Frame, direction anchor.Direction, item collection.Item) (int, int) {
	width := min(ansi.StringWidth(Label(item)), max(frame.Width-popupChrome, 0))
	if direction == anchor.RightToLeft {
		end := frame.X + frame.Width - textInset
		return end - width, end
	}
	start := frame.X + textInset
	return start, start + width
}

// center pads text with spaces to width, text in the middle.
func center(text string, width int) string {
	textWidth := ansi.StringWidth(text)
	if textWidth >= width {
		return ansi.Truncate(text, width, "")
	}
	left := (width - textWidth) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-textWidth-left)
}
