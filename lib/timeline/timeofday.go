// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"strings"
)

// TimeOfDay is a wall-clock time at minute resolution, stored as
// minutes since midnight. Arithmetic is plain integer math; values
// past 24:00 are representable (a block that runs past midnight keeps
// a well-defined end) but never produced by parsing.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM", "HHMM", or "HMM". The colon-free
// forms are what the time edit buffer produces; the colon form is the
// storage format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	digits := s
	if before, after, found := strings.Cut(s, ":"); found {
		if len(after) != 2 {
			return 0, fmt.Errorf("timeline: invalid time %q: want HHMM or HH:MM", s)
		}
		digits = before + after
	}
	if len(digits) < 3 || len(digits) > 4 {
		return 0, fmt.Errorf("timeline: invalid time %q: want HHMM or HH:MM", s)
	}
	split := len(digits) - 2
	hours, err := atoiDigits(digits[:split])
	if err != nil {
		return 0, fmt.Errorf("timeline: invalid time %q: %w", s, err)
	}
	minutes, err := atoiDigits(digits[split:])
	if err != nil {
		return 0, fmt.Errorf("timeline: invalid time %q: %w", s, err)
	}
	if hours > 23 {
		return 0, fmt.Errorf("timeline: invalid time %q: hour out of range", s)
	}
	if minutes > 59 {
		return 0, fmt.Errorf("timeline: invalid time %q: minute out of range", s)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// String formats the time as "HH:MM". Values past midnight wrap for
// display (24:30 renders as 00:30), matching what a paper timesheet
// would show.
func (t TimeOfDay) String() string {
	total := int(t)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

// Clock formats the time as four digits with no separator ("0915").
// This is the seed format for the time edit buffer.
func (t TimeOfDay) Clock() string {
	return strings.Replace(t.String(), ":", "", 1)
}

// Add returns the time shifted by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// atoiDigits parses a small non-negative integer, rejecting anything
// that isn't pure ASCII digits (strconv.Atoi would accept "+1").
func atoiDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// ParseDurationMinutes parses a duration edit buffer into whole
// minutes. Bare integers are minutes ("45"); otherwise hour and
// minute segments are accepted ("1h", "1h30m", "90m"). The result
// must be positive.
func ParseDurationMinutes(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("timeline: empty duration")
	}

	// Bare number: treat as minutes.
	if n, err := atoiDigits(trimmed); err == nil {
		if n == 0 {
			return 0, fmt.Errorf("timeline: duration must be positive")
		}
		return n, nil
	}

	total := 0
	rest := trimmed
	seenUnit := map[byte]bool{}
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i == len(rest) {
			return 0, fmt.Errorf("timeline: invalid duration %q (e.g. 15m, 1h30m)", s)
		}
		value, err := atoiDigits(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("timeline: invalid duration %q: %w", s, err)
		}
		unit := rest[i]
		if seenUnit[unit] {
			return 0, fmt.Errorf("timeline: invalid duration %q: repeated unit", s)
		}
		seenUnit[unit] = true
		switch unit {
		case 'h':
			total += value * 60
		case 'm':
			total += value
		default:
			return 0, fmt.Errorf("timeline: invalid duration %q: unknown unit %q", s, string(unit))
		}
		rest = rest[i+1:]
	}
	if total == 0 {
		return 0, fmt.Errorf("timeline: duration must be positive")
	}
	return total, nil
}

// FormatDurationMinutes renders minutes the way the duration column
// displays them: "45m", "2h", "1h30m". Zero renders as empty (an open
// block shows no duration).
func FormatDurationMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}
