// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	if got := fake.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}

	fake.Advance(90 * time.Minute)
	want := start.Add(90 * time.Minute)
	if got := fake.Now(); !got.Equal(want) {
		t.Errorf("after Advance: Now() = %v, want %v", got, want)
	}
}

func TestFakeSet(t *testing.T) {
	fake := NewFake(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	pinned := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	fake.Set(pinned)
	if got := fake.Now(); !got.Equal(pinned) {
		t.Errorf("after Set: Now() = %v, want %v", got, pinned)
	}
}

func TestRealMovesForward(t *testing.T) {
	first := Real().Now()
	second := Real().Now()
	if second.Before(first) {
		t.Errorf("real clock went backwards: %v then %v", first, second)
	}
}
