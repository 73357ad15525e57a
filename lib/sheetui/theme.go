// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the timesheet editor. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected cell and row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Cell being edited (buffer visible in place of the value).
	EditingBackground lipgloss.Color
	EditingForeground lipgloss.Color

	// Table chrome.
	HeaderBackground lipgloss.Color
	HeaderForeground lipgloss.Color
	ZebraBackground  lipgloss.Color // Every other row.
	BorderColor      lipgloss.Color

	// Row semantics.
	BreakForeground    lipgloss.Color // Break rows.
	MismatchForeground lipgloss.Color // Rows whose end misses the next start.

	// Status bar.
	StatusText  lipgloss.Color
	KeyHintText lipgloss.Color

	// Calendar view.
	CalendarToday   lipgloss.Color
	CalendarHasData lipgloss.Color

	// Suggestion overlay.
	OverlayBackground lipgloss.Color
	OverlayForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	EditingBackground: lipgloss.Color("61"), // Muted indigo.
	EditingForeground: lipgloss.Color("231"),

	HeaderBackground: lipgloss.Color("17"), // Deep navy.
	HeaderForeground: lipgloss.Color("254"),
	ZebraBackground:  lipgloss.Color("234"),
	BorderColor:      lipgloss.Color("240"),

	BreakForeground:    lipgloss.Color("109"), // Desaturated teal.
	MismatchForeground: lipgloss.Color("203"), // Soft red.

	StatusText:  lipgloss.Color("250"),
	KeyHintText: lipgloss.Color("39"),

	CalendarToday:   lipgloss.Color("220"),
	CalendarHasData: lipgloss.Color("114"),

	OverlayBackground: lipgloss.Color("237"),
	OverlayForeground: lipgloss.Color("253"),
}
