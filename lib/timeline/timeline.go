// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"errors"
	"fmt"
	"slices"
)

// Operation rejections surfaced to the user as status messages. The
// timeline is left byte-for-byte unchanged when any of these is
// returned.
var (
	ErrSplitTooSmall  = errors.New("cannot split further")
	ErrNothingToMerge = errors.New("no item to merge with")
	ErrBeforePrevious = errors.New("cannot be before previous item's start")
	ErrAfterNext      = errors.New("cannot be after next item's start")
	ErrPastOwnEnd     = errors.New("cannot move start past the item's end")
	ErrNoSuchRow      = errors.New("no such row")
)

// Timeline is the ordered, gap-free block list for exactly one day,
// plus the pending-delete set of blocks removed by merges and
// duration edits that still need delete commands issued.
//
// A Timeline is created when a day is loaded and replaced wholesale
// when the active day changes. It is not safe for concurrent use; a
// single owner (the UI model) mutates it.
type Timeline struct {
	day    Day
	blocks []TimeBlock

	// pendingDelete holds blocks removed from the list but not yet
	// flushed as delete commands.
	pendingDelete []TimeBlock
}

// New builds a Timeline for the given day. If blocks is empty a
// single open placeholder block at dayStart is synthesized so the
// timeline is never empty. Blocks must already be ordered by start
// time (the loader orders them; corrupt rows are the loader's
// problem, not this constructor's).
func New(day Day, dayStart TimeOfDay, blocks []TimeBlock) *Timeline {
	if len(blocks) == 0 {
		blocks = []TimeBlock{NewBlock(dayStart, 0)}
	}
	return &Timeline{day: day, blocks: blocks}
}

// Day returns the day this timeline covers.
func (tl *Timeline) Day() Day { return tl.day }

// Len returns the number of blocks.
func (tl *Timeline) Len() int { return len(tl.blocks) }

// Block returns a pointer to block i for in-place mutation by edit
// commits. The pointer is invalidated by the next structural
// operation (split, merge, duration edit).
func (tl *Timeline) Block(i int) (*TimeBlock, error) {
	if i < 0 || i >= len(tl.blocks) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchRow, i, len(tl.blocks))
	}
	return &tl.blocks[i], nil
}

// Blocks returns the block list for iteration and rendering. Callers
// must not reorder it.
func (tl *Timeline) Blocks() []TimeBlock { return tl.blocks }

// Split halves block i into two contiguous blocks. The first keeps
// the block's data and ceil(n/2) minutes; the second is a fresh blank
// block with the remaining floor(n/2). Blocks under two minutes
// cannot be split.
func (tl *Timeline) Split(i int) error {
	block, err := tl.Block(i)
	if err != nil {
		return err
	}
	if block.Duration < 2 {
		return ErrSplitTooSmall
	}

	second := block.Duration / 2
	first := block.Duration - second

	block.Duration = first
	block.Version.Touch()

	tl.blocks = slices.Insert(tl.blocks, i+1, NewBlock(block.Start.Add(first), second))
	return nil
}

// MergeDown folds block i+1 into block i: durations add, descriptions
// concatenate with " / ", and the removed block goes to the
// pending-delete set. Fails on the last row.
func (tl *Timeline) MergeDown(i int) error {
	block, err := tl.Block(i)
	if err != nil {
		return err
	}
	if i+1 >= len(tl.blocks) {
		return ErrNothingToMerge
	}

	removed := tl.blocks[i+1]
	block.Duration += removed.Duration
	block.Description = block.Description + " / " + removed.Description
	block.Version.Touch()

	tl.blocks = slices.Delete(tl.blocks, i+1, i+2)
	tl.pendingDelete = append(tl.pendingDelete, removed)
	return nil
}

// SetDuration resizes block i to the given positive number of
// minutes, redistributing time across the following blocks so the day
// stays contiguous. On the last row the freed future doesn't exist,
// so a fresh open block is appended at the new end instead; the
// caller moves the cursor there.
//
// Growing claims minutes from the following blocks in order: a block
// whose span is entirely consumed is removed (queued for deletion), a
// partially consumed block shrinks and shifts. Shrinking gives the
// freed minutes to the immediate successor. A trailing open
// placeholder just moves: it starts later, losing no time.
func (tl *Timeline) SetDuration(i int, minutes int) error {
	block, err := tl.Block(i)
	if err != nil {
		return err
	}
	if minutes <= 0 {
		return fmt.Errorf("timeline: duration must be positive")
	}

	block.Duration = minutes
	block.Version.Touch()

	if i == len(tl.blocks)-1 {
		tl.blocks = append(tl.blocks, NewBlock(block.Start.Add(minutes), 0))
		return nil
	}

	targetEnd := block.Start.Add(minutes)
	var consumed []int

	for j := i + 1; j < len(tl.blocks); j++ {
		next := &tl.blocks[j]

		if next.Start == targetEnd {
			break
		}

		if targetEnd < next.Start {
			// Shrank: the one following block absorbs the freed time.
			freed := int(next.Start - targetEnd)
			next.Start = targetEnd
			next.Duration += freed
			next.Version.Touch()
			break
		}

		// Grew: this block owes minutes to the edited one.
		owed := int(targetEnd - next.Start)

		if j == len(tl.blocks)-1 && next.IsOpen() {
			// The day's open end has no time to give; it just
			// starts later.
			next.Start = targetEnd
			next.Version.Touch()
			break
		}

		if next.Duration <= owed {
			consumed = append(consumed, j)
			continue
		}

		next.Duration -= owed
		next.Start = targetEnd
		next.Version.Touch()
		break
	}

	// Deferred removal keeps the walk's index arithmetic stable.
	for k := len(consumed) - 1; k >= 0; k-- {
		j := consumed[k]
		tl.pendingDelete = append(tl.pendingDelete, tl.blocks[j])
		tl.blocks = slices.Delete(tl.blocks, j, j+1)
	}
	return nil
}

// SetStart moves block i's start, trading the minutes with the
// previous block: moving later grows the previous block, moving
// earlier shrinks it. The block's own duration absorbs the opposite
// adjustment unless it is open (an unfilled block gets no end
// invented for it). The move is bounded by the previous block's start
// and the next block's start.
func (tl *Timeline) SetStart(i int, start TimeOfDay) error {
	block, err := tl.Block(i)
	if err != nil {
		return err
	}

	if i > 0 && start < tl.blocks[i-1].Start {
		return ErrBeforePrevious
	}
	if i < len(tl.blocks)-1 && start > tl.blocks[i+1].Start {
		return ErrAfterNext
	}

	delta := int(start - block.Start)
	if delta == 0 {
		return nil
	}
	if !block.IsOpen() && block.Duration-delta < 0 {
		// Only reachable on the last row (earlier rows hit the
		// next-start bound first), where a filled block must not end
		// up with negative duration.
		return ErrPastOwnEnd
	}

	if i > 0 {
		previous := &tl.blocks[i-1]
		previous.Duration += delta
		previous.Version.Touch()
	}
	if !block.IsOpen() {
		block.Duration -= delta
	}
	block.Start = start
	block.Version.Touch()
	return nil
}

// AppendOpen appends a fresh open block at the day's current end and
// returns its row index. Used by the description fast path ("fill
// this row, continue to the next").
func (tl *Timeline) AppendOpen() int {
	last := tl.blocks[len(tl.blocks)-1]
	tl.blocks = append(tl.blocks, NewBlock(last.End(), 0))
	return len(tl.blocks) - 1
}

// TakePendingDeletes drains the pending-delete set. Each returned
// block needs exactly one delete command; the set is empty afterward.
func (tl *Timeline) TakePendingDeletes() []TimeBlock {
	taken := tl.pendingDelete
	tl.pendingDelete = nil
	return taken
}

// PendingDeletes returns the pending-delete set without draining it.
func (tl *Timeline) PendingDeletes() []TimeBlock { return tl.pendingDelete }

// Mismatched reports whether block i's end fails to meet block i+1's
// start. The renderer flags such rows; they can only appear if a bug
// (or corrupt stored data) broke contiguity, so surfacing them beats
// hiding them.
func (tl *Timeline) Mismatched(i int) bool {
	if i < 0 || i+1 >= len(tl.blocks) {
		return false
	}
	return tl.blocks[i].End() != tl.blocks[i+1].Start
}

// TotalWorkedMinutes sums the duration of all non-break blocks.
func (tl *Timeline) TotalWorkedMinutes() int {
	total := 0
	for i := range tl.blocks {
		if tl.blocks[i].IsBreak() {
			continue
		}
		total += tl.blocks[i].Duration
	}
	return total
}
