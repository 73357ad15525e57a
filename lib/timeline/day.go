// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"time"
)

// Day is a calendar date with no time-of-day component. Timesheets are
// keyed by Day; all cross-day arithmetic (day switching, month
// grouping) goes through it so the rest of the code never touches
// time.Time location handling.
type Day struct {
	year  int
	month time.Month
	day   int
}

// DayOf returns the Day containing the given instant, in the
// instant's location.
func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	return Day{year: year, month: month, day: day}
}

// NewDay constructs a Day from its components. The components are
// normalized the way time.Date normalizes them (month 13 rolls into
// the next year, and so on).
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDay parses an ISO "2006-01-02" date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("timeline: parsing day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool { return d == Day{} }

// ISO returns the day formatted as "2006-01-02". This is the storage
// key format.
func (d Day) ISO() string { return d.time().Format("2006-01-02") }

// MonthPrefix returns "2006-01", the shared prefix of every day in
// the same month. Used for month-scoped storage queries.
func (d Day) MonthPrefix() string { return d.time().Format("2006-01") }

// String returns the ISO form.
func (d Day) String() string { return d.ISO() }

// AddDays returns the day n days later (or earlier for negative n).
func (d Day) AddDays(n int) Day { return DayOf(d.time().AddDate(0, 0, n)) }

// AddMonths returns the day n months later, clamping to the target
// month's last day (Jan 31 + 1 month is Feb 28, not March 3). Month
// paging in the calendar must stay within the target month.
func (d Day) AddMonths(n int) Day {
	first := time.Date(d.year, d.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	return DayOf(first.AddDate(0, 0, min(d.day, lastDay)-1))
}

// Year returns the calendar year.
func (d Day) Year() int { return d.year }

// Month returns the calendar month.
func (d Day) Month() time.Month { return d.month }

// DayOfMonth returns the day within the month, 1-based.
func (d Day) DayOfMonth() int { return d.day }

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 week number.
func (d Day) ISOWeek() int {
	_, week := d.time().ISOWeek()
	return week
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool { return d.time().Before(other.time()) }

func (d Day) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
