// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"errors"
	"testing"
)

func mustDay(t *testing.T, iso string) Day {
	t.Helper()
	day, err := ParseDay(iso)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", iso, err)
	}
	return day
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

// buildTimeline assembles a contiguous timeline starting at 09:00
// from a list of durations. A zero duration means an open block and
// must come last.
func buildTimeline(t *testing.T, durations ...int) *Timeline {
	t.Helper()
	start := TimeOfDay(9 * 60)
	var blocks []TimeBlock
	for _, d := range durations {
		blocks = append(blocks, NewBlock(start, d))
		start = start.Add(d)
	}
	return New(mustDay(t, "2026-08-21"), TimeOfDay(9*60), blocks)
}

// requireContiguous checks every adjacent pair meets end-to-start.
func requireContiguous(t *testing.T, tl *Timeline) {
	t.Helper()
	for i := 0; i+1 < tl.Len(); i++ {
		if tl.Mismatched(i) {
			a := tl.Blocks()[i]
			b := tl.Blocks()[i+1]
			t.Fatalf("gap after row %d: %s+%dm does not meet %s",
				i, a.Start, a.Duration, b.Start)
		}
	}
}

func TestNewSynthesizesPlaceholder(t *testing.T) {
	tl := New(mustDay(t, "2026-08-21"), mustTime(t, "08:30"), nil)
	if tl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tl.Len())
	}
	block := tl.Blocks()[0]
	if block.Start != mustTime(t, "08:30") || !block.IsOpen() {
		t.Fatalf("placeholder = %s+%dm, want open block at 08:30", block.Start, block.Duration)
	}
	if !block.Version.ShouldSave() {
		t.Fatal("placeholder should start dirty")
	}
}

func TestSetDurationShrinkGivesToNext(t *testing.T) {
	// 09:00+60, 10:00+30. Shrinking the first to 45 hands the freed
	// 15 minutes to the second.
	tl := buildTimeline(t, 60, 30)
	if err := tl.SetDuration(0, 45); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	second := tl.Blocks()[1]
	if second.Start != mustTime(t, "09:45") || second.Duration != 45 {
		t.Fatalf("second = %s+%dm, want 09:45+45m", second.Start, second.Duration)
	}
	if len(tl.PendingDeletes()) != 0 {
		t.Fatalf("pending deletes = %d, want 0", len(tl.PendingDeletes()))
	}
}

func TestSetDurationGrowConsumesFollower(t *testing.T) {
	// 09:00+60, 10:00+30, 10:30+60. Growing the first to 90 swallows
	// the 30-minute follower entirely.
	tl := buildTimeline(t, 60, 30, 60)
	if err := tl.SetDuration(0, 90); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tl.Len())
	}
	second := tl.Blocks()[1]
	if second.Start != mustTime(t, "10:30") || second.Duration != 60 {
		t.Fatalf("second = %s+%dm, want 10:30+60m", second.Start, second.Duration)
	}
	deletes := tl.TakePendingDeletes()
	if len(deletes) != 1 || deletes[0].Duration != 30 {
		t.Fatalf("pending deletes = %v, want the consumed 30m block", deletes)
	}
	if len(tl.TakePendingDeletes()) != 0 {
		t.Fatal("TakePendingDeletes must drain")
	}
}

func TestSetDurationGrowPartiallyConsumes(t *testing.T) {
	tl := buildTimeline(t, 60, 30, 60)
	if err := tl.SetDuration(0, 75); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	second := tl.Blocks()[1]
	if second.Start != mustTime(t, "10:15") || second.Duration != 15 {
		t.Fatalf("second = %s+%dm, want 10:15+15m", second.Start, second.Duration)
	}
	third := tl.Blocks()[2]
	if third.Start != mustTime(t, "10:30") || third.Duration != 60 {
		t.Fatalf("third untouched, got %s+%dm", third.Start, third.Duration)
	}
}

func TestSetDurationGrowMovesTrailingOpenBlock(t *testing.T) {
	// The open end of the day has no time to give up; it just starts
	// later.
	tl := buildTimeline(t, 60, 0)
	if err := tl.SetDuration(0, 120); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	open := tl.Blocks()[1]
	if open.Start != mustTime(t, "11:00") || !open.IsOpen() {
		t.Fatalf("open block = %s+%dm, want open at 11:00", open.Start, open.Duration)
	}
	if len(tl.PendingDeletes()) != 0 {
		t.Fatal("open block must not be deleted")
	}
}

func TestSetDurationOnLastRowAppendsOpenBlock(t *testing.T) {
	tl := buildTimeline(t, 60)
	if err := tl.SetDuration(0, 45); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tl.Len())
	}
	open := tl.Blocks()[1]
	if open.Start != mustTime(t, "09:45") || !open.IsOpen() {
		t.Fatalf("appended = %s+%dm, want open at 09:45", open.Start, open.Duration)
	}
}

func TestSetDurationConservesFilledTime(t *testing.T) {
	// Shrinking and growing only trades minutes between blocks;
	// nothing filled disappears except wholly consumed blocks, and
	// those land in the pending-delete set.
	tl := buildTimeline(t, 60, 30, 45, 0)
	before := 0
	for _, b := range tl.Blocks() {
		before += b.Duration
	}

	if err := tl.SetDuration(1, 10); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	if err := tl.SetDuration(0, 100); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	requireContiguous(t, tl)

	// Wholly consumed blocks hand their span to the grown block, so
	// the list total is unchanged even as rows disappear.
	after := 0
	for _, b := range tl.Blocks() {
		after += b.Duration
	}
	if after != before {
		t.Fatalf("total filled minutes %d, want %d", after, before)
	}
}

func TestSetDurationRejectsNonPositive(t *testing.T) {
	tl := buildTimeline(t, 60, 30)
	if err := tl.SetDuration(0, 0); err == nil {
		t.Fatal("SetDuration(0) should fail")
	}
	if err := tl.SetDuration(0, -5); err == nil {
		t.Fatal("SetDuration(-5) should fail")
	}
}

func TestSetStartLaterTakesFromSelf(t *testing.T) {
	tl := buildTimeline(t, 60, 30)
	if err := tl.SetStart(1, mustTime(t, "10:15")); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	requireContiguous(t, tl)

	first := tl.Blocks()[0]
	second := tl.Blocks()[1]
	if first.Duration != 75 {
		t.Fatalf("first duration = %dm, want 75m", first.Duration)
	}
	if second.Start != mustTime(t, "10:15") || second.Duration != 15 {
		t.Fatalf("second = %s+%dm, want 10:15+15m", second.Start, second.Duration)
	}
}

func TestSetStartEarlierTakesFromPrevious(t *testing.T) {
	tl := buildTimeline(t, 60, 30)
	if err := tl.SetStart(1, mustTime(t, "09:30")); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	requireContiguous(t, tl)

	first := tl.Blocks()[0]
	second := tl.Blocks()[1]
	if first.Duration != 30 {
		t.Fatalf("first duration = %dm, want 30m", first.Duration)
	}
	if second.Duration != 60 {
		t.Fatalf("second duration = %dm, want 60m", second.Duration)
	}
}

func TestSetStartOpenBlockKeepsNoEnd(t *testing.T) {
	tl := buildTimeline(t, 60, 0)
	if err := tl.SetStart(1, mustTime(t, "10:30")); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	open := tl.Blocks()[1]
	if !open.IsOpen() {
		t.Fatalf("open block gained a duration: %dm", open.Duration)
	}
	if tl.Blocks()[0].Duration != 90 {
		t.Fatalf("first duration = %dm, want 90m", tl.Blocks()[0].Duration)
	}
}

func TestSetStartBounds(t *testing.T) {
	tl := buildTimeline(t, 60, 30, 60)

	if err := tl.SetStart(1, mustTime(t, "08:59")); !errors.Is(err, ErrBeforePrevious) {
		t.Fatalf("err = %v, want ErrBeforePrevious", err)
	}
	if err := tl.SetStart(1, mustTime(t, "10:31")); !errors.Is(err, ErrAfterNext) {
		t.Fatalf("err = %v, want ErrAfterNext", err)
	}
	requireContiguous(t, tl)
	if tl.Blocks()[1].Start != mustTime(t, "10:00") {
		t.Fatal("rejected edit must leave the timeline unchanged")
	}
}

func TestSetStartLastRowCannotPassOwnEnd(t *testing.T) {
	tl := buildTimeline(t, 60, 30)
	if err := tl.SetStart(1, mustTime(t, "10:45")); !errors.Is(err, ErrPastOwnEnd) {
		t.Fatalf("err = %v, want ErrPastOwnEnd", err)
	}
}

func TestSplitHalves(t *testing.T) {
	tl := buildTimeline(t, 45)
	tl.Blocks()[0].Description = "standup"
	if err := tl.Split(0); err != nil {
		t.Fatalf("Split: %v", err)
	}
	requireContiguous(t, tl)

	first := tl.Blocks()[0]
	second := tl.Blocks()[1]
	if first.Duration != 23 || second.Duration != 22 {
		t.Fatalf("durations = %dm/%dm, want 23m/22m", first.Duration, second.Duration)
	}
	if first.Description != "standup" || second.Description != "" {
		t.Fatal("first half keeps the data, second half is blank")
	}
	if second.Start != mustTime(t, "09:23") {
		t.Fatalf("second start = %s, want 09:23", second.Start)
	}
}

func TestSplitRejectsTinyBlocks(t *testing.T) {
	tl := buildTimeline(t, 1, 30)
	if err := tl.Split(0); !errors.Is(err, ErrSplitTooSmall) {
		t.Fatalf("err = %v, want ErrSplitTooSmall", err)
	}
	tl2 := buildTimeline(t, 0)
	if err := tl2.Split(0); !errors.Is(err, ErrSplitTooSmall) {
		t.Fatalf("open block split err = %v, want ErrSplitTooSmall", err)
	}
}

func TestMergeDownConcatenatesAndQueuesDelete(t *testing.T) {
	tl := buildTimeline(t, 30, 15)
	tl.Blocks()[0].Description = "review"
	tl.Blocks()[1].Description = "follow-up"
	removedID := tl.Blocks()[1].ID

	if err := tl.MergeDown(0); err != nil {
		t.Fatalf("MergeDown: %v", err)
	}
	requireContiguous(t, tl)

	if tl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tl.Len())
	}
	merged := tl.Blocks()[0]
	if merged.Duration != 45 {
		t.Fatalf("duration = %dm, want 45m", merged.Duration)
	}
	if merged.Description != "review / follow-up" {
		t.Fatalf("description = %q", merged.Description)
	}
	deletes := tl.TakePendingDeletes()
	if len(deletes) != 1 || deletes[0].ID != removedID {
		t.Fatalf("pending deletes = %v, want block %s", deletes, removedID)
	}
}

func TestMergeDownRejectsLastRow(t *testing.T) {
	tl := buildTimeline(t, 30)
	if err := tl.MergeDown(0); !errors.Is(err, ErrNothingToMerge) {
		t.Fatalf("err = %v, want ErrNothingToMerge", err)
	}
}

func TestSplitThenMergeRestoresDuration(t *testing.T) {
	tl := buildTimeline(t, 45, 0)
	if err := tl.Split(0); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if err := tl.MergeDown(0); err != nil {
		t.Fatalf("MergeDown: %v", err)
	}
	requireContiguous(t, tl)
	if tl.Blocks()[0].Duration != 45 {
		t.Fatalf("duration = %dm, want 45m", tl.Blocks()[0].Duration)
	}
}

func TestAppendOpen(t *testing.T) {
	tl := buildTimeline(t, 60)
	i := tl.AppendOpen()
	if i != 1 {
		t.Fatalf("AppendOpen index = %d, want 1", i)
	}
	requireContiguous(t, tl)
	open := tl.Blocks()[1]
	if open.Start != mustTime(t, "10:00") || !open.IsOpen() {
		t.Fatalf("appended = %s+%dm, want open at 10:00", open.Start, open.Duration)
	}
}

func TestTotalWorkedMinutesSkipsBreaks(t *testing.T) {
	tl := buildTimeline(t, 60, 30, 45)
	tl.Blocks()[1].ProjectKey = BreakProjectKey
	if got := tl.TotalWorkedMinutes(); got != 105 {
		t.Fatalf("TotalWorkedMinutes() = %d, want 105", got)
	}
}

func TestMismatchedDetectsGaps(t *testing.T) {
	day := mustDay(t, "2026-08-21")
	blocks := []TimeBlock{
		NewBlock(mustTime(t, "09:00"), 30),
		NewBlock(mustTime(t, "10:00"), 30),
	}
	tl := New(day, mustTime(t, "09:00"), blocks)
	if !tl.Mismatched(0) {
		t.Fatal("gap between 09:30 and 10:00 not flagged")
	}
	if tl.Mismatched(1) {
		t.Fatal("last row can never be mismatched")
	}
}
