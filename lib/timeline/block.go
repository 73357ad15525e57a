// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// BreakProjectKey marks a block as a break. Breaks count toward the
// day's coverage but not toward worked hours, summaries, or exports.
const BreakProjectKey = "x"

// blockIDEncoding is lowercase base32 with no padding, giving 26
// characters for 16 random bytes.
var blockIDEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewBlockID returns a fresh process-wide unique entry identifier,
// "tent_" followed by 26 base32 characters. IDs are generated UI-side
// so a block keeps its identity from first keystroke through every
// persistence round-trip.
func NewBlockID() string {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("timeline: reading random block id: " + err.Error())
	}
	return "tent_" + strings.ToLower(blockIDEncoding.EncodeToString(raw[:]))
}

// TimeBlock is one row of a day's timeline: a contiguous span of time
// with its classification fields and save-state tracking.
type TimeBlock struct {
	// ID is stable across edits and persistence round-trips.
	ID string

	// Start is the wall-clock start of the block.
	Start TimeOfDay

	// Duration is the block's length in whole minutes. Zero on the
	// last block means the day's open end.
	Duration int

	// ProjectKey selects the project; empty means the configured
	// default project, BreakProjectKey means a break.
	ProjectKey string

	// TicketKey is the ticket booked against, empty if unset.
	TicketKey string

	// Description is free text.
	Description string

	// Version tracks which edits of this block storage has confirmed.
	Version DataVersion
}

// NewBlock returns a fresh blank block at the given start time with
// the given duration. Fresh blocks are dirty from birth.
func NewBlock(start TimeOfDay, duration int) TimeBlock {
	return TimeBlock{
		ID:       NewBlockID(),
		Start:    start,
		Duration: duration,
		Version:  NewVersion(),
	}
}

// End returns the block's end time (Start + Duration).
func (b *TimeBlock) End() TimeOfDay {
	return b.Start.Add(b.Duration)
}

// IsOpen reports whether the block is an open end: zero duration.
func (b *TimeBlock) IsOpen() bool { return b.Duration == 0 }

// IsBreak reports whether the block is a break.
func (b *TimeBlock) IsBreak() bool { return b.ProjectKey == BreakProjectKey }

// IsBlank reports whether the block carries no user data besides its
// position: no ticket, no description, no duration. The table
// renderer shows the default project key faintly on blocks that have
// data but no explicit project; blank blocks stay empty.
func (b *TimeBlock) IsBlank() bool {
	return b.TicketKey == "" && b.Description == "" && b.Duration == 0
}
