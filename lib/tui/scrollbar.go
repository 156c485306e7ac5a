// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// RenderScrollbar produces a single-column scrollbar of the given height.
// The thumb indicates the visible region within the total content.
//
// When content fits within the visible area the thumb spans the entire
// height. The thumb uses the accent color when focused, and a dim
// color when unfocused.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) []string {
	if height <= 0 {
		return nil
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor).Background(theme.PopupBackground)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor).Background(theme.PopupBackground)

	lines := make([]string, height)
	if totalItems <= visibleItems || totalItems <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return lines
	}

	thumbOffset, thumbSize := ScrollbarThumb(height, totalItems, visibleItems, scrollOffset)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return lines
}

// ScrollbarThumb returns the thumb's first row and length. The size is
// proportional to visible/total with a minimum of one row; the offset
// is proportional to the scroll offset within the scrollable range.
func ScrollbarThumb(height, totalItems, visibleItems, scrollOffset int) (offset, size int) {
	if totalItems <= visibleItems || totalItems <= 0 {
		return 0, height
	}
	size = max(1, height*visibleItems/totalItems)

	scrollableRange := totalItems - visibleItems
	trackRange := height - size
	if scrollableRange > 0 && trackRange > 0 {
		offset = scrollOffset * trackRange / scrollableRange
	}
	offset = min(max(offset, 0), height-size)
	return offset, size
}
