// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sheetshark/sheetshark/lib/config"
	"github.com/sheetshark/sheetshark/lib/timeline"
)

// Column widths for the timesheet table. The description column fills
// the remaining space; all others are fixed.
const (
	columnWidthTime     = 7  // "09:00" + padding
	columnWidthProject  = 10
	columnWidthTicket   = 14
	columnWidthDuration = 7 // "1h30m" + padding

	fixedColumnsWidth = columnWidthTime + columnWidthProject +
		columnWidthTicket + columnWidthDuration
)

// tableRenderer draws the day's block list as a five-column table
// within a given width.
type tableRenderer struct {
	theme  Theme
	config *config.Config
	width  int
}

func newTableRenderer(theme Theme, cfg *config.Config, width int) tableRenderer {
	return tableRenderer{theme: theme, config: cfg, width: width}
}

func (r tableRenderer) descriptionWidth() int {
	width := r.width - fixedColumnsWidth
	if width < 10 {
		width = 10
	}
	return width
}

// renderHeader draws the column title row.
func (r tableRenderer) renderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(r.theme.HeaderForeground).
		Background(r.theme.HeaderBackground).
		Bold(true)

	cells := []string{
		padCell("time", columnWidthTime),
		padCell("proj", columnWidthProject),
		padCell("ticket", columnWidthTicket),
		padCell("description", r.descriptionWidth()),
		padCell("len", columnWidthDuration),
	}
	return style.Render(strings.Join(cells, ""))
}

// rowState carries everything renderRow needs to know about the
// cursor for one row: which cell is selected and, when that cell is
// being edited, the buffer text to show in place of the value.
type rowState struct {
	selected       bool
	selectedColumn int

	editing    bool
	editColumn int
	buffer     string
}

// renderRow draws one block as a table row. Break rows are tinted,
// rows whose end misses the next row's start are flagged in the
// mismatch color, and every other row gets the zebra background.
func (r tableRenderer) renderRow(block timeline.TimeBlock, index int, mismatched bool, state rowState) string {
	values := [columnCount]string{
		block.Start.String(),
		r.projectCell(block),
		block.TicketKey,
		block.Description,
		durationCell(block),
	}
	widths := [columnCount]int{
		columnWidthTime,
		columnWidthProject,
		columnWidthTicket,
		r.descriptionWidth(),
		columnWidthDuration,
	}

	base := lipgloss.NewStyle().Foreground(r.theme.NormalText)
	if block.IsBreak() {
		base = base.Foreground(r.theme.BreakForeground)
	}
	if index%2 == 1 {
		base = base.Background(r.theme.ZebraBackground)
	}

	var row strings.Builder
	for column := 0; column < columnCount; column++ {
		text := values[column]
		style := base

		switch {
		case state.editing && state.selected && column == state.editColumn:
			text = editBufferDisplay(column, state.buffer)
			style = r.editingStyle(column)

		case state.selected && column == state.selectedColumn:
			style = style.
				Foreground(r.theme.SelectedForeground).
				Background(r.theme.SelectedBackground).
				Bold(true)

		case column == columnTime && mismatched:
			style = style.Foreground(r.theme.MismatchForeground)

		case column == columnProject && block.ProjectKey == "" && !block.IsBlank():
			// The default project applies; show it dimmed.
			style = style.Foreground(r.theme.FaintText)
		}

		row.WriteString(style.Render(padCell(text, widths[column])))
	}
	return row.String()
}

// editingStyle is the per-column style of the in-progress buffer. The
// clock-like columns underline, the free-text columns italicize, so
// the kind of input expected is visible at a glance.
func (r tableRenderer) editingStyle(column int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(r.theme.EditingForeground).
		Background(r.theme.EditingBackground)
	switch column {
	case columnTime, columnTicket:
		return style.Underline(true)
	case columnDescription, columnDuration:
		return style.Italic(true)
	}
	return style
}

// editBufferDisplay is the buffer text shown in the edited cell. An
// empty duration buffer shows an ellipsis because the old value still
// stands until something is typed.
func editBufferDisplay(column int, buffer string) string {
	if column == columnDuration && buffer == "" {
		return "..."
	}
	return buffer
}

func (r tableRenderer) projectCell(block timeline.TimeBlock) string {
	if block.ProjectKey == "" && !block.IsBlank() {
		return r.config.DefaultProjectKey
	}
	return block.ProjectKey
}

func durationCell(block timeline.TimeBlock) string {
	return timeline.FormatDurationMinutes(block.Duration)
}

// padCell pads or truncates text to an exact display width with one
// trailing space of breathing room inside the width. Padding counts
// display columns, not bytes, so truncation ellipses stay aligned.
func padCell(text string, width int) string {
	if ansi.StringWidth(text) > width-1 {
		text = ansi.Truncate(text, width-2, "…")
	}
	return text + strings.Repeat(" ", width-ansi.StringWidth(text))
}
