// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package sheetui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sheetshark/sheetshark/lib/timeline"
)

// calendarState is the month-grid picker shown over the sheet view.
// It pages by month and highlights days that already have stored
// entries, which arrive asynchronously per shown month.
type calendarState struct {
	// cursor is the day the grid highlight sits on. Paging months
	// keeps the day-of-month where possible.
	cursor timeline.Day

	// daysWithData marks days of the shown month that have entries,
	// keyed by ISO date.
	daysWithData map[string]bool
}

func newCalendarState(day timeline.Day) calendarState {
	return calendarState{cursor: day, daysWithData: map[string]bool{}}
}

// setMonthData installs the stored-days answer for a month. Answers
// for months paged past are discarded.
func (c *calendarState) setMonthData(month string, days []timeline.Day) {
	if month != c.cursor.MonthPrefix() {
		return
	}
	c.daysWithData = make(map[string]bool, len(days))
	for _, day := range days {
		c.daysWithData[day.ISO()] = true
	}
}

func (c *calendarState) moveDays(n int)   { c.cursor = c.cursor.AddDays(n) }
func (c *calendarState) moveMonths(n int) { c.cursor = c.cursor.AddMonths(n) }

// renderCalendar draws the month grid. Weeks run Monday to Sunday,
// today is tinted, days with stored data are tinted differently, and
// the cursor day is inverted.
func renderCalendar(c calendarState, theme Theme, today timeline.Day) string {
	var out strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Background(theme.HeaderBackground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	first := timeline.NewDay(c.cursor.Year(), c.cursor.Month(), 1)
	title := fmt.Sprintf(" %s %d ", c.cursor.Month().String(), c.cursor.Year())
	out.WriteString(titleStyle.Render(title))
	out.WriteString("\n")
	out.WriteString(faint.Render(" Mo Tu We Th Fr Sa Su"))
	out.WriteString("\n")

	// Leading blanks up to the first weekday. time.Weekday has
	// Sunday as 0; shift so Monday is 0.
	lead := (int(first.Weekday()) + 6) % 7
	out.WriteString(strings.Repeat("   ", lead))

	column := lead
	for day := first; day.Month() == first.Month(); day = day.AddDays(1) {
		style := lipgloss.NewStyle().Foreground(theme.NormalText)
		switch {
		case day == c.cursor:
			style = style.Reverse(true).Bold(true)
		case day == today:
			style = style.Foreground(theme.CalendarToday).Bold(true)
		case c.daysWithData[day.ISO()]:
			style = style.Foreground(theme.CalendarHasData)
		default:
			style = faint
		}

		out.WriteString(style.Render(fmt.Sprintf(" %2d", day.DayOfMonth())))
		column++
		if column == 7 {
			out.WriteString("\n")
			column = 0
		}
	}
	if column != 0 {
		out.WriteString("\n")
	}
	return out.String()
}

// weekdayShort is used in the sheet view's day headline.
func weekdayShort(w time.Weekday) string {
	return w.String()[:3]
}
