// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderStatusBar draws the two bottom lines: the status message and
// the key legend for whatever bindings currently apply.
func renderStatusBar(status string, hints []key.Binding, theme Theme, width int) string {
	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusText)
	keyStyle := lipgloss.NewStyle().Foreground(theme.KeyHintText).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	var legend strings.Builder
	for index, hint := range hints {
		if !hint.Enabled() {
			continue
		}
		if index > 0 {
			legend.WriteString("  ")
		}
		legend.WriteString(keyStyle.Render(hint.Help().Key))
		legend.WriteString(" ")
		legend.WriteString(labelStyle.Render(hint.Help().Desc))
	}

	statusLine := status
	if ansi.StringWidth(statusLine) > width {
		statusLine = ansi.Truncate(statusLine, width-1, "…")
	}
	return statusStyle.Render(statusLine) + "\n" + legend.String()
}

// sheetHints is the key legend shown in select mode.
func sheetHints(keys KeyMap) []key.Binding {
	return []key.Binding{
		keys.Edit, keys.Split, keys.MergeDown,
		keys.PreviousDay, keys.NextDay, keys.Calendar,
		keys.Export, keys.CopyBookings, keys.Quit,
	}
}

// dayHints is the key legend shown while no row is selected; only
// the day-level keys apply.
func dayHints(keys KeyMap) []key.Binding {
	return []key.Binding{
		keys.PreviousDay, keys.NextDay, keys.Calendar,
		keys.Export, keys.CopyBookings, keys.Quit,
	}
}

// editHints is the key legend shown while a cell is being edited.
func editHints(keys KeyMap) []key.Binding {
	return []key.Binding{keys.Commit, keys.Cancel, keys.ClearBuf}
}

// calendarHints is the key legend shown in the calendar view.
func calendarHints(keys KeyMap) []key.Binding {
	return []key.Binding{
		keys.Commit, keys.PreviousDay, keys.NextDay, keys.Cancel,
	}
}
