// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the timesheet editor.
type KeyMap struct {
	// Cell cursor movement. Left at the first column wraps to the
	// previous row; Right at the last column wraps to the next. The
	// last row never wraps forward so a duration can be typed there
	// to grow the day.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	End   key.Binding

	// Editing.
	Edit     key.Binding // Enter the selected cell's edit mode.
	Commit   key.Binding // Commit the buffer and leave edit mode.
	Cancel   key.Binding // Leave edit mode without committing.
	ClearBuf key.Binding // Wipe the edit buffer.

	// Column jumps (select mode only).
	JumpTime        key.Binding
	JumpProject     key.Binding
	JumpTicket      key.Binding
	JumpDescription key.Binding
	JumpDuration    key.Binding

	// Row operations.
	Split     key.Binding
	MergeDown key.Binding

	// Day switching and views.
	PreviousDay key.Binding
	NextDay     key.Binding
	Calendar    key.Binding

	// Year paging (calendar view only).
	PreviousYear key.Binding
	NextYear     key.Binding

	// Output.
	Export       key.Binding
	ExportCSV    key.Binding
	ExportJSON   key.Binding
	CopyBookings key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "shift+tab"),
		key.WithHelp("←", "previous cell"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "tab"),
		key.WithHelp("→", "next cell"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("End", "last cell"),
	),
	Edit: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "edit cell"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "commit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	ClearBuf: key.NewBinding(
		key.WithKeys("^"),
		key.WithHelp("^", "clear"),
	),
	JumpTime: key.NewBinding(
		key.WithKeys("#"),
		key.WithHelp("#", "start time"),
	),
	JumpProject: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "project"),
	),
	JumpTicket: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "ticket"),
	),
	JumpDescription: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "description"),
	),
	JumpDuration: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "duration"),
	),
	Split: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "split row"),
	),
	MergeDown: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "merge down"),
	),
	PreviousDay: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "previous day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "next day"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("c", "f2"),
		key.WithHelp("c", "calendar"),
	),
	PreviousYear: key.NewBinding(
		key.WithKeys("shift+up"),
		key.WithHelp("⇧↑", "previous year"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("shift+down"),
		key.WithHelp("⇧↓", "next year"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("^e", "export csv"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("ctrl+j"),
		key.WithHelp("^j", "export json"),
	),
	CopyBookings: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy bookings"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
