// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeline holds the data model for one day of time tracking:
// an ordered, gap-free sequence of [TimeBlock] values and the
// operations that edit it without ever breaking contiguity.
//
// The contiguity invariant: for every non-last block i,
//
//	block[i].Start + block[i].Duration == block[i+1].Start
//
// The last block may have zero duration, which marks the open end of
// the day (time not yet filled in). Every mutating operation either
// preserves the invariant or rejects the edit and leaves the timeline
// untouched.
//
// Editing never destroys time: shrinking a block gives its minutes to
// the following block, growing a block claims minutes from the blocks
// after it (removing any that are fully consumed), and moving a
// block's start trades minutes with the block before it. Blocks
// removed this way land in a pending-delete set that the persistence
// layer drains into delete commands.
//
// Each block carries a [DataVersion], the optimistic save-state
// tracker that tells the UI which of its edits have reached storage.
package timeline
