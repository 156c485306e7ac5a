// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette of the picker. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText   lipgloss.Color
	FaintText    lipgloss.Color
	DisabledText lipgloss.Color

	// Focused row in the popup.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// The closed select.
	TriggerBackground lipgloss.Color
	TriggerForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	PopupBackground  lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent marks the committed value, the scrollbar thumb, and the
	// focused trigger.
	Accent lipgloss.Color

	// Status line colors for log records.
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// WithOverrides returns a copy of theme with every non-empty entry of
// overrides applied. Keys are the lowercase field names used in
// configuration files ("accent", "border", ...). Unknown keys are
// returned so the caller can report them.
func (theme Theme) WithOverrides(overrides map[string]string) (Theme, []string) {
	var unknown []string
	for name, value := range overrides {
		if value == "" {
			continue
		}
		color := lipgloss.Color(value)
		switch name {
		case "text":
			theme.NormalText = color
		case "faint":
			theme.FaintText = color
		case "disabled":
			theme.DisabledText = color
		case "selected_background":
			theme.SelectedBackground = color
		case "selected_foreground":
			theme.SelectedForeground = color
		case "trigger_background":
			theme.TriggerBackground = color
		case "trigger_foreground":
			theme.TriggerForeground = color
		case "header":
			theme.HeaderForeground = color
		case "popup_background":
			theme.PopupBackground = color
		case "border":
			theme.BorderColor = color
		case "help":
			theme.HelpText = color
		case "accent":
			theme.Accent = color
		case "warning":
			theme.Warning = color
		case "error":
			theme.Error = color
		default:
			unknown = append(unknown, name)
		}
	}
	return theme, unknown
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText:   lipgloss.Color("252"),
	FaintText:    lipgloss.Color("245"),
	DisabledText: lipgloss.Color("240"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TriggerBackground: lipgloss.Color("237"),
	TriggerForeground: lipgloss.Color("252"),

	HeaderForeground: lipgloss.Color("255"),
	PopupBackground:  lipgloss.Color("235"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent: lipgloss.Color("220"), // yellow/amber

	Warning: lipgloss.Color("208"), // orange
	Error:   lipgloss.Color("196"), // bright red
}
